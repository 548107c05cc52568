package normalize

import (
	"strings"
	"testing"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

func TestDisplayTextSectionOrder(t *testing.T) {
	result := domain.TranscriptionResult{
		Transcript: domain.Transcript{Text: "речь целиком"},
		Summary: domain.Summary{
			Text:           "краткое саммари",
			KeyPoints:      []string{"первый", "второй"},
			ActionItems:    []string{"сделать отчёт"},
			Risks:          []string{"срыв сроков"},
			MeetingSummary: "итог встречи",
		},
	}

	got := DisplayText(result)
	want := strings.Join([]string{
		"=== ТРАНСКРИПТ ===\nречь целиком",
		"=== САММАРИ ===\nкраткое саммари",
		"=== КЛЮЧЕВЫЕ МОМЕНТЫ ===\n1. первый\n2. второй",
		"=== ЗАДАЧИ ===\n1. сделать отчёт",
		"=== РИСКИ ===\n1. срыв сроков",
		"=== САММАРИ ВСТРЕЧИ ===\nитог встречи",
	}, "\n\n")

	if got != want {
		t.Errorf("DisplayText() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisplayTextOmitsEmptySections(t *testing.T) {
	result := domain.TranscriptionResult{
		Summary: domain.Summary{KeyPoints: []string{"только моменты"}},
	}

	got := DisplayText(result)
	if strings.Contains(got, "ТРАНСКРИПТ") {
		t.Errorf("empty transcript section should be omitted:\n%s", got)
	}
	if !strings.Contains(got, "=== КЛЮЧЕВЫЕ МОМЕНТЫ ===\n1. только моменты") {
		t.Errorf("key points section missing:\n%s", got)
	}
}

func TestDisplayTextEmptyResult(t *testing.T) {
	if got := DisplayText(domain.TranscriptionResult{}); got != "" {
		t.Errorf("DisplayText(zero) = %q, want empty", got)
	}
}

func TestSegmentsText(t *testing.T) {
	result := domain.TranscriptionResult{
		Transcript: domain.Transcript{
			Segments: []domain.Segment{
				{Start: 5, End: 9, Text: "привет", Speaker: "SPEAKER_00"},
				{Start: 65, End: 70, Text: "пока"},
			},
		},
	}

	got := SegmentsText(result)
	want := "00:05 [SPEAKER_00] привет\n01:05 пока"
	if got != want {
		t.Errorf("SegmentsText() = %q, want %q", got, want)
	}
}

func TestSegmentsTextPlaceholder(t *testing.T) {
	if got := SegmentsText(domain.TranscriptionResult{}); got != PlaceholderSegments {
		t.Errorf("SegmentsText(zero) = %q, want placeholder", got)
	}
}
