package domain

import "time"

type JobStatus string

const (
	StatusUploading                 JobStatus = "uploading"
	StatusProcessing                JobStatus = "processing"
	StatusTranscribedWaitingSummary JobStatus = "transcribed_waiting_summary"
	StatusDone                      JobStatus = "done"
	StatusError                     JobStatus = "error"
)

// StatusFromServer maps the server status vocabulary onto client statuses.
// The second return is false for strings outside the known vocabulary.
func StatusFromServer(raw string) (JobStatus, bool) {
	switch raw {
	case "done":
		return StatusDone, true
	case "processing", "queued":
		return StatusProcessing, true
	case "transcribed_waiting_summary":
		return StatusTranscribedWaitingSummary, true
	case "error":
		return StatusError, true
	default:
		return "", false
	}
}

// Job is one server-side transcription request tracked by the client.
type Job struct {
	JobID         string     `json:"job_id"`
	Status        JobStatus  `json:"status"`
	FileName      string     `json:"file_name,omitempty"`
	FileSizeBytes int64      `json:"file_size_bytes,omitempty"`
	Language      string     `json:"language,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty"`
}

// HistoryEntry is a Job plus the flags the history list renders.
type HistoryEntry struct {
	Job
	HasTranscript bool `json:"has_transcript"`
	HasSummary    bool `json:"has_summary"`
}

// Session is the authenticated identity returned by login.
type Session struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}
