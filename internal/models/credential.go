package models

import "time"

// Provider identifies a generative-model backend.
type Provider string

const (
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
	ProviderMock      Provider = "mock"
)

var ValidProviders = map[Provider]bool{
	ProviderGoogle:    true,
	ProviderAnthropic: true,
	ProviderMock:      true,
}

// ModelCredential authorizes calls to one provider. At most one
// credential exists per provider; saving overwrites in place.
type ModelCredential struct {
	Provider  Provider  `json:"id"`
	APIKey    string    `json:"apiKey"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ModelSettings is the full credential state: every stored credential
// plus the provider currently in use.
type ModelSettings struct {
	Credentials []ModelCredential `json:"models"`
	Selected    Provider          `json:"selected,omitempty"`
}
