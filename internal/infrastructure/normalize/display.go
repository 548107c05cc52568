package normalize

import (
	"fmt"
	"strings"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

// Placeholders shown when a section has no content. The wording matches
// the server's user-facing language.
const (
	PlaceholderTranscript     = "Транскрипт недоступен"
	PlaceholderSummary        = "Саммари недоступно"
	PlaceholderKeyPoints      = "Ключевые моменты недоступны"
	PlaceholderActionItems    = "Задачи недоступны"
	PlaceholderRisks          = "Риски не определены"
	PlaceholderMeetingSummary = "Саммари встречи недоступно"
	PlaceholderSegments       = "Сегменты недоступны"
)

// DisplayText renders the result as sections in a fixed order: transcript,
// summary, key points, action items, risks, meeting summary. A section is
// emitted only when its content differs from its placeholder.
func DisplayText(r domain.TranscriptionResult) string {
	sections := []struct {
		header  string
		content string
	}{
		{"=== ТРАНСКРИПТ ===", r.Transcript.Text},
		{"=== САММАРИ ===", r.Summary.Text},
		{"=== КЛЮЧЕВЫЕ МОМЕНТЫ ===", numberedList(r.Summary.KeyPoints)},
		{"=== ЗАДАЧИ ===", numberedList(r.Summary.ActionItems)},
		{"=== РИСКИ ===", numberedList(r.Summary.Risks)},
		{"=== САММАРИ ВСТРЕЧИ ===", r.Summary.MeetingSummary},
	}

	var out []string
	for _, s := range sections {
		if strings.TrimSpace(s.content) == "" {
			continue
		}
		out = append(out, s.header+"\n"+strings.TrimSpace(s.content))
	}
	return strings.Join(out, "\n\n")
}

// SegmentsText renders timed segments one per line as "MM:SS [speaker] text".
func SegmentsText(r domain.TranscriptionResult) string {
	if len(r.Transcript.Segments) == 0 {
		return PlaceholderSegments
	}
	var b strings.Builder
	for i, seg := range r.Transcript.Segments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatTime(seg.Start))
		if seg.Speaker != "" {
			b.WriteString(" [" + seg.Speaker + "]")
		}
		b.WriteString(" " + seg.Text)
	}
	return b.String()
}

func numberedList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}

func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
