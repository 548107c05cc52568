package domain

// TranscriptionResult is the normalized output for a completed job. Absent
// upstream fields are empty strings or nil slices; a nil slice means the
// server sent nothing, distinct from an explicitly empty list.
type TranscriptionResult struct {
	Transcript Transcript `json:"transcript"`
	Summary    Summary    `json:"summary"`
}

type Transcript struct {
	Text     string    `json:"text,omitempty"`
	FullText string    `json:"full_text,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
	Language string    `json:"language,omitempty"`
}

type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

type Summary struct {
	Text           string   `json:"text,omitempty"`
	KeyPoints      []string `json:"key_points,omitempty"`
	ActionItems    []string `json:"action_items,omitempty"`
	Risks          []string `json:"risks,omitempty"`
	MeetingSummary string   `json:"meeting_summary,omitempty"`
	RawSummary     string   `json:"raw_summary,omitempty"`
	Owner          string   `json:"owner,omitempty"`
	Task           string   `json:"task,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
}

// HasTranscript reports whether any transcript content survived normalization.
func (r TranscriptionResult) HasTranscript() bool {
	return r.Transcript.Text != "" || r.Transcript.FullText != "" || len(r.Transcript.Segments) > 0
}

// HasSummary reports whether any summary content survived normalization.
func (r TranscriptionResult) HasSummary() bool {
	s := r.Summary
	return s.Text != "" || s.MeetingSummary != "" || s.RawSummary != "" ||
		len(s.KeyPoints) > 0 || len(s.ActionItems) > 0 || len(s.Risks) > 0
}

// TranscribeOutcome pairs the terminal job state with its normalized result.
type TranscribeOutcome struct {
	Job    Job
	Result TranscriptionResult
}
