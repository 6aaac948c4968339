package entities

// TemplateVersion is one versioned body of prompt text. Content is opaque to
// the pipeline: placeholders are substituted by string replacement only, the
// body itself is never parsed.
type TemplateVersion struct {
	Content     string `json:"content"`
	Description string `json:"description"`
	IsLatest    bool   `json:"is_latest"`
	CreatedAt   string `json:"created_at,omitempty"`
	Author      string `json:"author,omitempty"`
}

// TemplateInfo describes a registered template for listing endpoints.
type TemplateInfo struct {
	Name          string   `json:"name"`
	LatestVersion string   `json:"latest_version"`
	Description   string   `json:"description"`
	Versions      []string `json:"versions"`
}
