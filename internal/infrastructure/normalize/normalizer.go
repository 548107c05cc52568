package normalize

import (
	"encoding/json"
	"strings"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

// Normalizer converts the loosely-typed result payload into the stable
// model. Every field degrades independently: a missing or malformed field
// becomes its zero value and never invalidates the rest of the result.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (Normalizer) Normalize(raw []byte) domain.TranscriptionResult {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return domain.TranscriptionResult{}
	}

	transcript := asObject(root["transcript"])
	summary := asObject(root["summary"])

	return domain.TranscriptionResult{
		Transcript: domain.Transcript{
			Text:     firstString(transcript, "text", "transcript"),
			FullText: firstString(transcript, "full_text", "text"),
			Segments: parseSegments(transcript["segments"]),
			Language: firstString(transcript, "language"),
		},
		Summary: domain.Summary{
			Text:           firstString(summary, "summary", "text"),
			KeyPoints:      stringList(summary["key_points"]),
			ActionItems:    stringList(summary["action_items"]),
			Risks:          stringList(summary["risks"]),
			MeetingSummary: firstString(summary, "meeting_summary"),
			RawSummary:     firstString(summary, "raw_summary"),
			Owner:          firstString(summary, "owner"),
			Task:           firstString(summary, "task"),
			DueDate:        firstString(summary, "due_date"),
		},
	}
}

func asObject(v any) map[string]any {
	obj, _ := v.(map[string]any)
	return obj
}

// firstString returns the first key holding a non-empty string.
func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// stringList copies array elements in order. A missing or non-array value
// yields nil, which display code treats as "absent" rather than "empty".
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseSegments(v any) []domain.Segment {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Segment, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		seg := domain.Segment{
			Start:   asFloat(obj["start"]),
			End:     asFloat(obj["end"]),
			Text:    firstString(obj, "text"),
			Speaker: firstString(obj, "speaker"),
		}
		if seg.Start < 0 {
			seg.Start = 0
		}
		if seg.End < seg.Start {
			seg.End = seg.Start
		}
		out = append(out, seg)
	}
	return out
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
