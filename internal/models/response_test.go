package models

import (
	"testing"
)

func TestModelOutput_ChosenCandidate(t *testing.T) {
	tests := []struct {
		name     string
		output   *ModelOutput
		wantText string
		wantNil  bool
	}{
		{
			name: "first candidate",
			output: &ModelOutput{
				Candidates: []Candidate{{Text: "First"}, {Text: "Second"}},
			},
			wantText: "First",
		},
		{
			name: "second candidate",
			output: &ModelOutput{
				Candidates: []Candidate{{Text: "First"}, {Text: "Second"}},
				Chosen:     1,
			},
			wantText: "Second",
		},
		{
			name: "out of range falls back to first",
			output: &ModelOutput{
				Candidates: []Candidate{{Text: "First"}},
				Chosen:     5,
			},
			wantText: "First",
		},
		{
			name:    "no candidates",
			output:  &ModelOutput{},
			wantNil: true,
		},
		{
			name:    "nil output",
			output:  nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.output.ChosenCandidate()
			if tt.wantNil {
				if c != nil {
					t.Errorf("ChosenCandidate() = %+v, want nil", c)
				}
				if tt.output.Text() != "" {
					t.Errorf("Text() = %q, want empty", tt.output.Text())
				}
				return
			}
			if c == nil {
				t.Fatal("ChosenCandidate() returned nil")
			}
			if tt.output.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", tt.output.Text(), tt.wantText)
			}
		})
	}
}

func TestModelOutput_FinishReason(t *testing.T) {
	output := &ModelOutput{
		Candidates: []Candidate{{Text: "partial", FinishReason: "MAX_TOKENS"}},
	}

	if output.FinishReason() != "MAX_TOKENS" {
		t.Errorf("FinishReason() = %s, want MAX_TOKENS", output.FinishReason())
	}
	if !output.Truncated() {
		t.Error("expected Truncated() for MAX_TOKENS")
	}

	output.Candidates[0].FinishReason = "STOP"
	if output.Truncated() {
		t.Error("did not expect Truncated() for STOP")
	}
}
