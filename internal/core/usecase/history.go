package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/grigofil/plaudctl/internal/core/domain"
	"github.com/grigofil/plaudctl/internal/core/ports"
)

// HistoryUseCase keeps the past-jobs list: in memory for the session,
// snapshotted to disk between sessions, replaced wholesale by the server's
// view on refresh. Entries are unique by job id and ordered newest first.
type HistoryUseCase struct {
	mu       sync.Mutex
	api      ports.TranscriptionAPI
	snapshot ports.HistorySnapshot
	entries  []domain.HistoryEntry
}

func NewHistoryUseCase(snapshot ports.HistorySnapshot, api ports.TranscriptionAPI) *HistoryUseCase {
	uc := &HistoryUseCase{api: api, snapshot: snapshot}
	if snapshot != nil {
		entries, err := snapshot.Load()
		if err != nil {
			// A damaged snapshot degrades to an empty list.
			slog.Warn("history_snapshot_load_failed", "error", err)
		} else {
			uc.entries = entries
			uc.sortLocked()
		}
	}
	return uc
}

// List returns a copy of the current entries, newest first.
func (uc *HistoryUseCase) List() []domain.HistoryEntry {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.HistoryEntry, len(uc.entries))
	copy(out, uc.entries)
	return out
}

// Record inserts or replaces the entry with the same job id.
func (uc *HistoryUseCase) Record(entry domain.HistoryEntry) error {
	if entry.JobID == "" {
		return domain.WrapError(domain.ErrInvalidInput, "record history", fmt.Errorf("missing job id"))
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	replaced := false
	for i := range uc.entries {
		if uc.entries[i].JobID == entry.JobID {
			uc.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		uc.entries = append(uc.entries, entry)
	}
	uc.sortLocked()
	return uc.saveLocked()
}

// Refresh replaces the whole list with the server's authoritative view.
func (uc *HistoryUseCase) Refresh(ctx context.Context, auth domain.AuthContext) error {
	entries, err := uc.api.FetchHistory(ctx, auth)
	if err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.entries = entries
	uc.sortLocked()
	return uc.saveLocked()
}

// Delete removes the entry locally. With serverDelete it also invokes the
// server's delete endpoint; local removal happens regardless.
func (uc *HistoryUseCase) Delete(ctx context.Context, jobID string, auth domain.AuthContext, serverDelete bool) error {
	uc.mu.Lock()
	kept := uc.entries[:0]
	for _, e := range uc.entries {
		if e.JobID != jobID {
			kept = append(kept, e)
		}
	}
	uc.entries = kept
	saveErr := uc.saveLocked()
	uc.mu.Unlock()

	if saveErr != nil {
		return saveErr
	}
	if serverDelete {
		return uc.api.DeleteJob(ctx, auth, jobID)
	}
	return nil
}

func (uc *HistoryUseCase) sortLocked() {
	sort.SliceStable(uc.entries, func(i, j int) bool {
		return uc.entries[i].CreatedAt.After(uc.entries[j].CreatedAt)
	})
}

func (uc *HistoryUseCase) saveLocked() error {
	if uc.snapshot == nil {
		return nil
	}
	if err := uc.snapshot.Save(uc.entries); err != nil {
		return fmt.Errorf("save history snapshot: %w", err)
	}
	return nil
}
