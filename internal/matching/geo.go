package matching

import (
	"fmt"
	"sort"
	"strings"
)

// Location match scores, best first
const (
	LocationSameCity     = 1.0
	LocationSameRegion   = 0.8
	LocationAdjacent     = 0.6
	LocationSameZone     = 0.4
	LocationNoMatch      = 0.3
	LocationRemote       = 0.2
	LocationMissingScore = 0.5
)

// RegionTable is the geographic data behind the location factor. Region names
// are matched case-insensitively as substrings of a free-text location.
type RegionTable struct {
	// Regions in detection order; the first one found in a location wins
	Regions []string `toml:"regions" json:"regions"`

	// Adjacency lists neighbouring regions. Edges are read in both directions.
	Adjacency map[string][]string `toml:"adjacency" json:"adjacency"`

	// Zones group regions coarsely (north, south, ...)
	Zones map[string][]string `toml:"zones" json:"zones"`

	// RemoteMarkers flag a location as remote work
	RemoteMarkers []string `toml:"remote_markers" json:"remote_markers"`
}

// DefaultRegionTable returns the built-in table of Indian states
func DefaultRegionTable() RegionTable {
	return RegionTable{
		Regions: []string{
			"maharashtra", "karnataka", "tamil nadu", "telangana", "andhra pradesh", "kerala",
			"gujarat", "rajasthan", "madhya pradesh", "uttar pradesh", "bihar", "west bengal",
			"odisha", "assam", "jharkhand", "chhattisgarh", "haryana", "punjab", "himachal pradesh",
			"uttarakhand", "goa", "delhi", "chandigarh", "puducherry",
		},
		Adjacency: map[string][]string{
			"maharashtra":      {"gujarat", "madhya pradesh", "karnataka", "telangana", "goa"},
			"karnataka":        {"maharashtra", "telangana", "andhra pradesh", "tamil nadu", "kerala"},
			"tamil nadu":       {"karnataka", "kerala", "andhra pradesh"},
			"telangana":        {"maharashtra", "karnataka", "andhra pradesh"},
			"andhra pradesh":   {"telangana", "karnataka", "tamil nadu", "odisha"},
			"kerala":           {"karnataka", "tamil nadu"},
			"gujarat":          {"maharashtra", "madhya pradesh", "rajasthan"},
			"rajasthan":        {"gujarat", "madhya pradesh", "uttar pradesh", "haryana", "punjab"},
			"madhya pradesh":   {"maharashtra", "gujarat", "rajasthan", "uttar pradesh", "chhattisgarh"},
			"uttar pradesh":    {"rajasthan", "madhya pradesh", "chhattisgarh", "jharkhand", "bihar", "haryana"},
			"bihar":            {"uttar pradesh", "jharkhand", "west bengal"},
			"west bengal":      {"bihar", "jharkhand", "odisha", "sikkim"},
			"odisha":           {"andhra pradesh", "chhattisgarh", "jharkhand", "west bengal"},
			"assam":            {"west bengal", "arunachal pradesh", "nagaland", "manipur", "meghalaya"},
			"jharkhand":        {"bihar", "west bengal", "odisha", "chhattisgarh", "uttar pradesh"},
			"chhattisgarh":     {"madhya pradesh", "uttar pradesh", "jharkhand", "odisha", "telangana"},
			"haryana":          {"punjab", "rajasthan", "uttar pradesh", "delhi"},
			"punjab":           {"haryana", "rajasthan", "himachal pradesh"},
			"himachal pradesh": {"punjab", "uttarakhand", "haryana"},
			"uttarakhand":      {"himachal pradesh", "uttar pradesh", "haryana"},
			"goa":              {"maharashtra", "karnataka"},
			"delhi":            {"haryana", "uttar pradesh"},
			"chandigarh":       {"haryana", "punjab"},
			"puducherry":       {"tamil nadu"},
		},
		Zones: map[string][]string{
			"north":   {"delhi", "haryana", "punjab", "himachal pradesh", "uttarakhand", "rajasthan", "uttar pradesh"},
			"south":   {"karnataka", "tamil nadu", "telangana", "andhra pradesh", "kerala", "puducherry"},
			"west":    {"maharashtra", "gujarat", "goa", "madhya pradesh"},
			"east":    {"west bengal", "bihar", "odisha", "jharkhand", "assam"},
			"central": {"chhattisgarh", "madhya pradesh"},
		},
		RemoteMarkers: []string{"remote"},
	}
}

// AdjacencyIssueKind classifies a defect in a RegionTable
type AdjacencyIssueKind string

const (
	// IssueOneWay is an edge a→b without the matching b→a entry
	IssueOneWay AdjacencyIssueKind = "one_way"
	// IssueUnknownRegion is an edge to a region missing from Regions
	IssueUnknownRegion AdjacencyIssueKind = "unknown_region"
	// IssueMultiZone is a region listed under more than one zone
	IssueMultiZone AdjacencyIssueKind = "multi_zone"
)

// AdjacencyIssue is one data defect found in a RegionTable
type AdjacencyIssue struct {
	Kind AdjacencyIssueKind `json:"kind"`
	From string             `json:"from"`
	To   string             `json:"to"`
}

func (i AdjacencyIssue) String() string {
	switch i.Kind {
	case IssueOneWay:
		return fmt.Sprintf("%s lists %s as a neighbour but not the reverse", i.From, i.To)
	case IssueUnknownRegion:
		return fmt.Sprintf("%s lists unknown region %s", i.From, i.To)
	case IssueMultiZone:
		return fmt.Sprintf("%s appears in zones %s", i.From, i.To)
	default:
		return fmt.Sprintf("%s: %s -> %s", i.Kind, i.From, i.To)
	}
}

// Asymmetries reports edges that are not mirrored, edges to unlisted regions
// and regions placed in several zones. The table is not modified; the
// resolver treats edges as undirected regardless.
func (t RegionTable) Asymmetries() []AdjacencyIssue {
	known := make(map[string]bool, len(t.Regions))
	for _, r := range t.Regions {
		known[normalize(r)] = true
	}

	adj := make(map[string]map[string]bool, len(t.Adjacency))
	for from, tos := range t.Adjacency {
		set := make(map[string]bool, len(tos))
		for _, to := range tos {
			set[normalize(to)] = true
		}
		adj[normalize(from)] = set
	}

	var issues []AdjacencyIssue
	for from, tos := range adj {
		for to := range tos {
			if !known[to] {
				issues = append(issues, AdjacencyIssue{Kind: IssueUnknownRegion, From: from, To: to})
				continue
			}
			if !adj[to][from] {
				issues = append(issues, AdjacencyIssue{Kind: IssueOneWay, From: from, To: to})
			}
		}
	}

	zonesOf := make(map[string][]string)
	for zone, regions := range t.Zones {
		for _, r := range regions {
			r = normalize(r)
			zonesOf[r] = append(zonesOf[r], zone)
		}
	}
	for region, zones := range zonesOf {
		if len(zones) > 1 {
			sort.Strings(zones)
			issues = append(issues, AdjacencyIssue{Kind: IssueMultiZone, From: region, To: strings.Join(zones, ",")})
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Kind != issues[j].Kind {
			return issues[i].Kind < issues[j].Kind
		}
		if issues[i].From != issues[j].From {
			return issues[i].From < issues[j].From
		}
		return issues[i].To < issues[j].To
	})
	return issues
}

// GeoResolver scores how close two free-text locations are. It is immutable
// after construction and safe for concurrent use.
type GeoResolver struct {
	text      TextMatcher
	regions   []string
	neighbors map[string]map[string]bool
	zones     [][]string
	remote    []string
}

// NewGeoResolver indexes table for lookups. A nil matcher uses SubstringMatcher.
func NewGeoResolver(table RegionTable, text TextMatcher) *GeoResolver {
	if text == nil {
		text = SubstringMatcher{}
	}

	g := &GeoResolver{
		text:      text,
		neighbors: make(map[string]map[string]bool),
	}

	for _, r := range table.Regions {
		if r = normalize(r); r != "" {
			g.regions = append(g.regions, r)
		}
	}

	for from, tos := range table.Adjacency {
		from = normalize(from)
		for _, to := range tos {
			to = normalize(to)
			if g.neighbors[from] == nil {
				g.neighbors[from] = make(map[string]bool)
			}
			g.neighbors[from][to] = true
		}
	}

	zoneNames := make([]string, 0, len(table.Zones))
	for name := range table.Zones {
		zoneNames = append(zoneNames, name)
	}
	sort.Strings(zoneNames)
	for _, name := range zoneNames {
		members := make([]string, 0, len(table.Zones[name]))
		for _, r := range table.Zones[name] {
			if r = normalize(r); r != "" {
				members = append(members, r)
			}
		}
		g.zones = append(g.zones, members)
	}

	for _, m := range table.RemoteMarkers {
		if m = normalize(m); m != "" {
			g.remote = append(g.remote, m)
		}
	}

	return g
}

// Score returns the location match score for the two locations
func (g *GeoResolver) Score(enquiryLocation, candidateLocation string) float64 {
	a, b := normalize(enquiryLocation), normalize(candidateLocation)
	if a == "" || b == "" {
		return LocationMissingScore
	}

	if a == b || g.text.Overlaps(a, b) {
		return LocationSameCity
	}

	if g.isRemote(a) || g.isRemote(b) {
		return LocationRemote
	}

	ra, rb := g.regionOf(a), g.regionOf(b)
	if ra != "" && rb != "" {
		if ra == rb {
			return LocationSameRegion
		}
		if g.neighbors[ra][rb] || g.neighbors[rb][ra] {
			return LocationAdjacent
		}
	}

	for _, members := range g.zones {
		if g.mentionsAny(a, members) && g.mentionsAny(b, members) {
			return LocationSameZone
		}
	}

	return LocationNoMatch
}

func (g *GeoResolver) isRemote(loc string) bool {
	return g.mentionsAny(loc, g.remote)
}

// regionOf returns the first known region mentioned in loc
func (g *GeoResolver) regionOf(loc string) string {
	for _, r := range g.regions {
		if g.text.Contains(loc, r) {
			return r
		}
	}
	return ""
}

func (g *GeoResolver) mentionsAny(loc string, names []string) bool {
	for _, n := range names {
		if g.text.Contains(loc, n) {
			return true
		}
	}
	return false
}
