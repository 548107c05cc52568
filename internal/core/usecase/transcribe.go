package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/grigofil/plaudctl/internal/core/domain"
	"github.com/grigofil/plaudctl/internal/core/ports"
)

const defaultPollInterval = 5 * time.Second

// TranscribeUseCase drives one job from a local audio file to a terminal
// state: stage the file, submit it, poll status on a fixed interval, fetch
// and normalize the result, and record the completed job into history.
//
// A transport failure while polling surfaces once and stops the run; the
// caller decides whether to Resume. Terminal Failed is reserved for the
// server reporting an error or responses the client cannot act on.
type TranscribeUseCase struct {
	api        ports.TranscriptionAPI
	normalizer ports.ResultNormalizer
	history    ports.HistoryRecorder
	stager     ports.UploadStager
	interval   time.Duration
	observer   ports.PollObserver
}

func NewTranscribeUseCase(
	api ports.TranscriptionAPI,
	normalizer ports.ResultNormalizer,
	history ports.HistoryRecorder,
	stager ports.UploadStager,
	interval time.Duration,
	observer ports.PollObserver,
) *TranscribeUseCase {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &TranscribeUseCase{
		api:        api,
		normalizer: normalizer,
		history:    history,
		stager:     stager,
		interval:   interval,
		observer:   observer,
	}
}

func (uc *TranscribeUseCase) Run(ctx context.Context, filePath string, auth domain.AuthContext, language string) (*domain.TranscribeOutcome, error) {
	if err := auth.Validate(); err != nil {
		return nil, err
	}

	job := domain.Job{
		Status:    domain.StatusUploading,
		FileName:  filepath.Base(filePath),
		Language:  language,
		CreatedAt: time.Now().UTC(),
	}
	uc.notify(ctx, domain.Transition{State: domain.PollStateSubmitting, Job: job})

	staged, cleanup, err := uc.stager.Stage(filePath)
	if err != nil {
		return nil, uc.fail(ctx, &job, "", fmt.Errorf("stage upload: %w", err))
	}
	defer cleanup()

	f, err := os.Open(staged)
	if err != nil {
		return nil, uc.fail(ctx, &job, "", fmt.Errorf("open staged file: %w", err))
	}
	defer f.Close()
	if info, statErr := f.Stat(); statErr == nil {
		job.FileSizeBytes = info.Size()
	}

	jobID, err := uc.api.Submit(ctx, auth, job.FileName, f, language)
	if err != nil {
		return nil, uc.fail(ctx, &job, "", err)
	}
	job.JobID = jobID

	return uc.Resume(ctx, job, auth)
}

// Resume polls an already submitted job until a terminal state. It is the
// continuation entry point after a surfaced transport failure.
func (uc *TranscribeUseCase) Resume(ctx context.Context, job domain.Job, auth domain.AuthContext) (*domain.TranscribeOutcome, error) {
	if err := auth.Validate(); err != nil {
		return nil, err
	}
	if job.JobID == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "resume poll", fmt.Errorf("missing job id"))
	}

	timer := time.NewTimer(uc.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		raw, err := uc.api.FetchStatus(ctx, auth, job.JobID)
		if ctx.Err() != nil {
			// Cancelled while the request was in flight: discard it.
			return nil, ctx.Err()
		}
		if err != nil {
			if domain.IsKind(err, domain.ErrNetwork) {
				return nil, err
			}
			return nil, uc.fail(ctx, &job, "", err)
		}

		status, known := domain.StatusFromServer(raw)
		switch {
		case known && status == domain.StatusDone:
			return uc.complete(ctx, job, auth, raw)
		case known && (status == domain.StatusProcessing || status == domain.StatusTranscribedWaitingSummary):
			job.Status = status
			uc.notify(ctx, domain.Transition{State: domain.PollStatePolling, RawStatus: raw, Job: job})
			timer.Reset(uc.interval)
		default:
			// Server-reported error or a status outside the vocabulary.
			return nil, uc.fail(ctx, &job, raw, fmt.Errorf("job %s failed with status %q", job.JobID, raw))
		}
	}
}

func (uc *TranscribeUseCase) complete(ctx context.Context, job domain.Job, auth domain.AuthContext, raw string) (*domain.TranscribeOutcome, error) {
	body, err := uc.api.FetchResult(ctx, auth, job.JobID)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		if domain.IsKind(err, domain.ErrNetwork) {
			return nil, err
		}
		return nil, uc.fail(ctx, &job, raw, err)
	}

	result := uc.normalizer.Normalize(body)
	now := time.Now().UTC()
	job.Status = domain.StatusDone
	job.CompletedAt = &now

	uc.record(domain.HistoryEntry{
		Job:           job,
		HasTranscript: result.HasTranscript(),
		HasSummary:    result.HasSummary(),
	})
	uc.notify(ctx, domain.Transition{State: domain.PollStateDone, RawStatus: raw, Job: job})

	return &domain.TranscribeOutcome{Job: job, Result: result}, nil
}

func (uc *TranscribeUseCase) fail(ctx context.Context, job *domain.Job, raw string, err error) error {
	now := time.Now().UTC()
	job.Status = domain.StatusError
	job.ErrorMessage = err.Error()
	job.CompletedAt = &now

	if job.JobID != "" {
		uc.record(domain.HistoryEntry{Job: *job})
	}
	uc.notify(ctx, domain.Transition{State: domain.PollStateFailed, RawStatus: raw, Job: *job})
	return err
}

func (uc *TranscribeUseCase) record(entry domain.HistoryEntry) {
	if uc.history == nil {
		return
	}
	if err := uc.history.Record(entry); err != nil {
		slog.Warn("history_record_failed", "job_id", entry.JobID, "error", err)
	}
}

func (uc *TranscribeUseCase) notify(ctx context.Context, t domain.Transition) {
	if uc.observer == nil || ctx.Err() != nil {
		return
	}
	uc.observer(t)
}
