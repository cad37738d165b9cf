package config

// Template is the commented config file written by 'smartmatch config init'
const Template = `# smartmatch configuration

[database]
path = "~/.local/share/smartmatch/smartmatch.db"

[matching]
max_results = 10
minimum_score = 30           # matches below this composite score are dropped
high_match_score = 70
excellent_match_score = 85
enable_location_boost = true
enable_verification_boost = true
text_matcher = "substring"   # substring | word
workers = 0                  # 0 = one per CPU

# Should sum to 1.0; other values are used as given with a warning
[matching.weights]
skill_match = 0.25
budget_match = 0.20
location_match = 0.15
experience_match = 0.15
response_time = 0.10
success_rate = 0.10
verification_bonus = 0.05

# Replace the built-in category keyword table
# [matching.categories]
# services = ["consulting", "design", "development"]

# Replace the built-in region table. Leave regions empty to keep it.
# [geo]
# regions = ["ontario", "quebec", "manitoba"]
# remote_markers = ["remote", "anywhere"]
#
# [geo.adjacency]
# ontario = ["quebec", "manitoba"]
#
# [geo.zones]
# central = ["ontario", "manitoba"]

[cache]
enabled = false
addr = "localhost:6379"
db = 0
ttl_minutes = 15

[log]
level = "info"      # debug | info | warn | error
format = "console"  # console | json

[mcp]
enabled = true
transport = "stdio"
`
