package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

const (
	resourceSummary   = "smartmatch://summary"
	resourceEnquiries = "smartmatch://enquiries"
	resourceRegions   = "smartmatch://regions"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         resourceSummary,
		Name:        "Marketplace Summary",
		Description: "Number of stored enquiries and sellers",
		MimeType:    "text/plain",
	},
	{
		URI:         resourceEnquiries,
		Name:        "Open Enquiries",
		Description: "The 20 most recent open enquiries",
		MimeType:    "text/plain",
	},
	{
		URI:         resourceRegions,
		Name:        "Region Data Check",
		Description: "Defects found in the region adjacency data",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
