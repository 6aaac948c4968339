package analysis

// TemplateVersionInfo describes one version of a template.
type TemplateVersionInfo struct {
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	IsLatest    bool   `json:"is_latest"`
	CreatedAt   string `json:"created_at,omitempty"`
	Author      string `json:"author,omitempty"`
}

// TemplateSummary is one row in the template listing.
type TemplateSummary struct {
	Name          string   `json:"name"`
	LatestVersion string   `json:"latest_version"`
	Description   string   `json:"description,omitempty"`
	Versions      []string `json:"versions"`
}

// ExportResponse describes a generated report. URL is set only when the
// report was stored.
type ExportResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	ObjectName  string `json:"object_name,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ListReportsResponse enumerates stored report objects under a prefix.
type ListReportsResponse struct {
	Prefix  string   `json:"prefix"`
	Reports []string `json:"reports"`
	Count   int      `json:"count"`
}
