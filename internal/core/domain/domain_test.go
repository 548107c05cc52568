package domain

import (
	"errors"
	"testing"
)

func TestStatusFromServer(t *testing.T) {
	tests := []struct {
		raw       string
		want      JobStatus
		wantKnown bool
	}{
		{"done", StatusDone, true},
		{"processing", StatusProcessing, true},
		{"queued", StatusProcessing, true},
		{"transcribed_waiting_summary", StatusTranscribedWaitingSummary, true},
		{"error", StatusError, true},
		{"exploded", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, known := StatusFromServer(tt.raw)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf("StatusFromServer(%q) = %q/%v, want %q/%v", tt.raw, got, known, tt.want, tt.wantKnown)
		}
	}
}

func TestAuthContextValidate(t *testing.T) {
	tests := []struct {
		name    string
		auth    AuthContext
		wantErr bool
	}{
		{"token only", AuthContext{ServerURL: "https://api.example.com", Token: "t"}, false},
		{"api key only", AuthContext{ServerURL: "http://api.example.com", APIKey: "k"}, false},
		{"no credential", AuthContext{ServerURL: "https://api.example.com"}, false},
		{"empty url", AuthContext{Token: "t"}, true},
		{"whitespace url", AuthContext{ServerURL: "   "}, true},
		{"no scheme", AuthContext{ServerURL: "api.example.com"}, true},
		{"bad scheme", AuthContext{ServerURL: "ftp://api.example.com"}, true},
		{"both credentials", AuthContext{ServerURL: "https://api.example.com", Token: "t", APIKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.auth.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsKind(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput kind", err)
			}
		})
	}
}

func TestAuthContextBaseURL(t *testing.T) {
	auth := AuthContext{ServerURL: " https://api.example.com/ "}
	if got := auth.BaseURL(); got != "https://api.example.com" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestWrapErrorKeepsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrNetwork, "status", cause)

	if !IsKind(err, ErrNetwork) {
		t.Error("wrapped error lost its kind")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	if WrapError(ErrNetwork, "status", nil) != nil {
		t.Error("wrapping nil should stay nil")
	}
}

func TestHasTranscriptAndSummary(t *testing.T) {
	var empty TranscriptionResult
	if empty.HasTranscript() || empty.HasSummary() {
		t.Error("zero result should have no content")
	}

	withSegments := TranscriptionResult{Transcript: Transcript{Segments: []Segment{{Text: "x"}}}}
	if !withSegments.HasTranscript() {
		t.Error("segments alone should count as transcript content")
	}

	withRisks := TranscriptionResult{Summary: Summary{Risks: []string{"x"}}}
	if !withRisks.HasSummary() {
		t.Error("risks alone should count as summary content")
	}
}
