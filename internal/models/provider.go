package models

// AIProviderConfig describes a provider's backend configuration as reported by the listing endpoint.
type AIProviderConfig struct {
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	Available bool   `json:"available"`
}

// AIProvider is an entry from the AI-provider listing endpoint.
type AIProvider struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Description string           `json:"description"`
	Status      string           `json:"status"` // available | unavailable
	Config      AIProviderConfig `json:"config"`
}

// Available reports whether the provider can serve generation requests.
func (p AIProvider) Available() bool {
	return p.Status == "available"
}

// ConnectionTest is the result of a provider connectivity test.
type ConnectionTest struct {
	Status  string `json:"status"` // success | failed
	Message string `json:"message"`
}

// AIGenerationRequest requests raw text generation through a provider.
type AIGenerationRequest struct {
	Prompt      string  `json:"prompt"`
	Provider    string  `json:"provider,omitempty"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// GeneratedText is the payload of a direct text generation call.
type GeneratedText struct {
	Text  string         `json:"text"`
	Usage map[string]any `json:"usage,omitempty"`
}

// Template is a named generation template (overview or daily).
type Template struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // overview | daily
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
	IsActive    bool   `json:"is_active"`
	IsSystem    bool   `json:"is_system"`
}
