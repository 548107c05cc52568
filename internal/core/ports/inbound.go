package ports

import (
	"context"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

// TranscriptionRunner is the inbound contract for driving one job from a
// local file to a terminal state.
type TranscriptionRunner interface {
	Run(ctx context.Context, filePath string, auth domain.AuthContext, language string) (*domain.TranscribeOutcome, error)
	Resume(ctx context.Context, job domain.Job, auth domain.AuthContext) (*domain.TranscribeOutcome, error)
}

// HistoryService is the inbound contract for the past-jobs list.
type HistoryService interface {
	List() []domain.HistoryEntry
	Refresh(ctx context.Context, auth domain.AuthContext) error
	Delete(ctx context.Context, jobID string, auth domain.AuthContext, serverDelete bool) error
}

// PollObserver receives poller state transitions. It is never invoked
// after the run's context is cancelled.
type PollObserver func(domain.Transition)
