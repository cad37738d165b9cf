package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name: "find_matches",
		Description: "Rank stored sellers for a buyer enquiry. Returns each match with its 0-100 score, " +
			"quality label, factor breakdown, reasons and recommendations, best first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"enquiry_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the enquiry to match",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of matches to return (default from config, usually 10)",
				},
				"minimum_score": map[string]interface{}{
					"type":        "integer",
					"description": "Drop matches scoring below this value, 0-100 (default from config, usually 30)",
				},
			},
			"required": []string{"enquiry_id"},
		},
	},
	{
		Name:        "list_enquiries",
		Description: "List buyer enquiries, newest first, with optional filters.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"status": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"open", "closed", "all"},
					"description": "Filter by enquiry status. Use 'all' or omit for no filter.",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Filter by category (exact, case-insensitive)",
				},
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Filter by location (case-insensitive partial match)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_enquiry",
		Description: "Get the full details of one enquiry.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"enquiry_id": map[string]interface{}{
					"type":        "string",
					"description": "Enquiry ID",
				},
			},
			"required": []string{"enquiry_id"},
		},
	},
	{
		Name:        "list_sellers",
		Description: "List seller profiles with their skills, budget range and track record.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Filter by location (case-insensitive partial match)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 50)",
				},
			},
		},
	},
	{
		Name:        "check_regions",
		Description: "Report defects in the region adjacency data, such as neighbours listed in one direction only.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
