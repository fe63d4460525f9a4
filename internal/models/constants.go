// Package models contains data types and constants for the Gemini generateContent API.
package models

import "strings"

// Endpoints for the Gemini REST API
const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	GenerateMethod   = "generateContent"
	APIKeyHeader     = "x-goog-api-key"
	ContentTypeJSON  = "application/json"
	MaxErrorBodySize = 4096
)

// Model represents a Gemini model addressable through the REST API
type Model struct {
	Name        string
	Description string
}

// Available models
var (
	Model20Flash = Model{
		Name:        "gemini-2.0-flash",
		Description: "Fast general-purpose model",
	}

	Model20FlashLite = Model{
		Name:        "gemini-2.0-flash-lite",
		Description: "Lower-latency, lower-cost variant",
	}

	Model25Flash = Model{
		Name:        "gemini-2.5-flash",
		Description: "Hybrid reasoning model",
	}

	Model25Pro = Model{
		Name:        "gemini-2.5-pro",
		Description: "Most capable model",
	}

	// DefaultModel is the model the chat front-end was built against
	DefaultModel = Model20Flash
)

// AllModels returns a list of all known models
func AllModels() []Model {
	return []Model{Model20Flash, Model20FlashLite, Model25Flash, Model25Pro}
}

// ModelFromName returns a known Model by its name. Unknown names are passed
// through unchanged so newer models work without a release.
func ModelFromName(name string) Model {
	name = strings.TrimPrefix(strings.TrimSpace(name), "models/")
	if name == "" {
		return DefaultModel
	}
	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	return Model{Name: name}
}

// GenerateURL returns the generateContent URL for model under baseURL
func GenerateURL(baseURL string, model Model) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/models/" + model.Name + ":" + GenerateMethod
}

// DefaultHeaders returns the default headers for generateContent requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": ContentTypeJSON,
		"Accept":       ContentTypeJSON,
		"User-Agent":   "bharatgpt/1.0",
	}
}
