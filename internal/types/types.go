package types

// WebsiteGeneration is the result of one website generation call.
type WebsiteGeneration struct {
	Model    string   `json:"model"`    // backend model id, or "fallback-template"
	HTML     string   `json:"html"`     // complete document, doctype included
	Warnings []string `json:"warnings"` // non-empty only on a fallback path
}

// Deployment mirrors the hosting provider's deployment record. Fields stay
// nil when the provider omits them, so they serialise as JSON null.
type Deployment struct {
	ID           *string `json:"id"`
	URL          *string `json:"url"`
	InspectorURL *string `json:"inspectorUrl"`
}

// CaptionSuggestion is a marketing caption plus hashtags for the image studio.
type CaptionSuggestion struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Model    string   `json:"model"`
	Warnings []string `json:"warnings"`
}

// ImageTemplate describes one of the fixed promo image layouts.
type ImageTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AspectRatio string `json:"aspectRatio"`
}
