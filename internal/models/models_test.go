package models

import (
	"testing"
)

func TestAllModels(t *testing.T) {
	models := AllModels()

	if len(models) == 0 {
		t.Error("Expected at least one model")
	}

	for _, model := range models {
		if model.Name == "" {
			t.Error("Model name should not be empty")
		}
		if model.Description == "" {
			t.Errorf("Model %s should have a description", model.Name)
		}
	}
}

func TestModelFromName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"gemini-2.0-flash", "gemini-2.0-flash"},
		{"gemini-2.5-pro", "gemini-2.5-pro"},
		{"models/gemini-2.5-flash", "gemini-2.5-flash"},
		{"  gemini-2.0-flash-lite ", "gemini-2.0-flash-lite"},
		{"gemini-future-model", "gemini-future-model"},
		{"", DefaultModel.Name},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := ModelFromName(tt.name)
			if model.Name != tt.expected {
				t.Errorf("ModelFromName(%q) = %v, want %v", tt.name, model.Name, tt.expected)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	if DefaultModel.Name != "gemini-2.0-flash" {
		t.Errorf("DefaultModel = %s, want gemini-2.0-flash", DefaultModel.Name)
	}
}

func TestGenerateURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"default base", "", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"},
		{"custom base", "http://127.0.0.1:9999/v1beta", "http://127.0.0.1:9999/v1beta/models/gemini-2.0-flash:generateContent"},
		{"trailing slash", "http://proxy/v1beta/", "http://proxy/v1beta/models/gemini-2.0-flash:generateContent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateURL(tt.baseURL, Model20Flash); got != tt.want {
				t.Errorf("GenerateURL() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDefaultHeaders(t *testing.T) {
	headers := DefaultHeaders()

	if headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", headers["Content-Type"])
	}
	if _, ok := headers[APIKeyHeader]; ok {
		t.Error("DefaultHeaders must not carry the API key")
	}
}

func TestMessage(t *testing.T) {
	msg := NewMessage(RoleUser, "hello")

	if !msg.IsUser() {
		t.Error("expected user message")
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if NewMessage(RoleAssistant, "hi").IsUser() {
		t.Error("assistant message reported as user")
	}
}
