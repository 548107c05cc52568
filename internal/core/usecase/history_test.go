package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/grigofil/plaudctl/internal/core/domain"
)

type memSnapshot struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	loadErr error
	saves   int
}

func (m *memSnapshot) Load() ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.entries, nil
}

func (m *memSnapshot) Save(entries []domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]domain.HistoryEntry, len(entries))
	copy(m.entries, entries)
	m.saves++
	return nil
}

type historyAPI struct {
	fakeAPI
	historyEntries []domain.HistoryEntry
	historyErr     error
	deleted        []string
}

func (h *historyAPI) FetchHistory(ctx context.Context, auth domain.AuthContext) ([]domain.HistoryEntry, error) {
	return h.historyEntries, h.historyErr
}

func (h *historyAPI) DeleteJob(ctx context.Context, auth domain.AuthContext, jobID string) error {
	h.deleted = append(h.deleted, jobID)
	return nil
}

func entry(jobID string, status domain.JobStatus, createdAt time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		Job: domain.Job{JobID: jobID, Status: status, CreatedAt: createdAt},
	}
}

func TestHistoryRecordReplacesByJobID(t *testing.T) {
	snapshot := &memSnapshot{}
	uc := NewHistoryUseCase(snapshot, &historyAPI{})

	created := time.Now().UTC()
	if err := uc.Record(entry("j1", domain.StatusProcessing, created)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := uc.Record(entry("j1", domain.StatusDone, created)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries := uc.List()
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Status != domain.StatusDone {
		t.Errorf("status = %q, want done", entries[0].Status)
	}
	if snapshot.saves != 2 {
		t.Errorf("snapshot saves = %d, want 2", snapshot.saves)
	}
}

func TestHistoryRecordRejectsMissingJobID(t *testing.T) {
	uc := NewHistoryUseCase(&memSnapshot{}, &historyAPI{})
	if err := uc.Record(domain.HistoryEntry{}); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("Record() error = %v, want ErrInvalidInput", err)
	}
}

func TestHistoryOrderedNewestFirst(t *testing.T) {
	base := time.Now().UTC()
	uc := NewHistoryUseCase(&memSnapshot{}, &historyAPI{})

	for i, id := range []string{"old", "newest", "middle"} {
		offsets := []time.Duration{-2 * time.Hour, 0, -time.Hour}
		if err := uc.Record(entry(id, domain.StatusDone, base.Add(offsets[i]))); err != nil {
			t.Fatalf("Record(%s) error = %v", id, err)
		}
	}

	entries := uc.List()
	got := []string{entries[0].JobID, entries[1].JobID, entries[2].JobID}
	want := []string{"newest", "middle", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestHistoryLoadsSnapshotOnStart(t *testing.T) {
	base := time.Now().UTC()
	snapshot := &memSnapshot{entries: []domain.HistoryEntry{
		entry("j1", domain.StatusDone, base.Add(-time.Hour)),
		entry("j2", domain.StatusDone, base),
	}}

	uc := NewHistoryUseCase(snapshot, &historyAPI{})
	entries := uc.List()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].JobID != "j2" {
		t.Errorf("first entry = %q, want newest j2", entries[0].JobID)
	}
}

func TestHistoryCorruptSnapshotDegradesToEmpty(t *testing.T) {
	snapshot := &memSnapshot{loadErr: fmt.Errorf("decode history snapshot: bad json")}
	uc := NewHistoryUseCase(snapshot, &historyAPI{})
	if entries := uc.List(); len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestHistoryRefreshReplacesList(t *testing.T) {
	base := time.Now().UTC()
	api := &historyAPI{historyEntries: []domain.HistoryEntry{
		entry("server-1", domain.StatusDone, base.Add(-time.Minute)),
		entry("server-2", domain.StatusProcessing, base),
	}}
	snapshot := &memSnapshot{}
	uc := NewHistoryUseCase(snapshot, api)

	if err := uc.Record(entry("local-only", domain.StatusDone, base.Add(-time.Hour))); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := uc.Refresh(context.Background(), validAuth()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	entries := uc.List()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].JobID != "server-2" || entries[1].JobID != "server-1" {
		t.Errorf("entries = %v, want server view newest first", []string{entries[0].JobID, entries[1].JobID})
	}
	if snapshot.saves != 2 {
		t.Errorf("snapshot saves = %d, want 2", snapshot.saves)
	}
}

func TestHistoryRefreshFailureKeepsList(t *testing.T) {
	api := &historyAPI{historyErr: domain.WrapError(domain.ErrNetwork, "history", fmt.Errorf("timeout"))}
	uc := NewHistoryUseCase(&memSnapshot{}, api)

	if err := uc.Record(entry("j1", domain.StatusDone, time.Now().UTC())); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := uc.Refresh(context.Background(), validAuth()); !domain.IsKind(err, domain.ErrNetwork) {
		t.Fatalf("Refresh() error = %v, want ErrNetwork", err)
	}
	if entries := uc.List(); len(entries) != 1 {
		t.Errorf("failed refresh must not drop existing entries, got %d", len(entries))
	}
}

func TestHistoryDeleteLocalOnly(t *testing.T) {
	api := &historyAPI{}
	uc := NewHistoryUseCase(&memSnapshot{}, api)

	if err := uc.Record(entry("j1", domain.StatusDone, time.Now().UTC())); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := uc.Delete(context.Background(), "j1", validAuth(), false); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if entries := uc.List(); len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
	if len(api.deleted) != 0 {
		t.Errorf("local delete must not call the server, got %v", api.deleted)
	}
}

func TestHistoryDeleteOnServer(t *testing.T) {
	api := &historyAPI{}
	uc := NewHistoryUseCase(&memSnapshot{}, api)

	if err := uc.Record(entry("j1", domain.StatusDone, time.Now().UTC())); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := uc.Delete(context.Background(), "j1", validAuth(), true); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if len(api.deleted) != 1 || api.deleted[0] != "j1" {
		t.Errorf("server deletes = %v, want [j1]", api.deleted)
	}
}
