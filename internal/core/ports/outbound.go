package ports

import (
	"context"
	"io"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

// TranscriptionAPI issues the HTTP calls of the transcription service.
// Implementations are stateless and safe for concurrent use across jobs.
type TranscriptionAPI interface {
	Submit(ctx context.Context, auth domain.AuthContext, fileName string, body io.Reader, language string) (string, error)
	FetchStatus(ctx context.Context, auth domain.AuthContext, jobID string) (string, error)
	FetchResult(ctx context.Context, auth domain.AuthContext, jobID string) ([]byte, error)
	Login(ctx context.Context, serverURL, username, password string) (domain.Session, error)
	FetchHistory(ctx context.Context, auth domain.AuthContext) ([]domain.HistoryEntry, error)
	DeleteJob(ctx context.Context, auth domain.AuthContext, jobID string) error
}

// ResultNormalizer converts the raw result payload into the stable model.
// It never fails; malformed fields degrade to their placeholders.
type ResultNormalizer interface {
	Normalize(raw []byte) domain.TranscriptionResult
}

// HistoryRecorder accepts completed jobs into the history list.
type HistoryRecorder interface {
	Record(entry domain.HistoryEntry) error
}

// HistorySnapshot persists the history list between sessions.
type HistorySnapshot interface {
	Load() ([]domain.HistoryEntry, error)
	Save(entries []domain.HistoryEntry) error
}

// UploadStager copies an input into a managed temporary file for upload.
type UploadStager interface {
	Stage(path string) (stagedPath string, cleanup func(), err error)
	Sweep() (removed int, err error)
}
