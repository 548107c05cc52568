package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grigofil/plaudctl/internal/core/domain"
	"github.com/grigofil/plaudctl/internal/infrastructure/resilience"
	"github.com/grigofil/plaudctl/internal/observability/metrics"
)

const defaultLanguage = "ru"

// Client issues the transcription service HTTP calls. It holds no per-job
// state and is safe for concurrent use across independent jobs.
type Client struct {
	httpClient *http.Client
	exec       *resilience.Executor
	metrics    *metrics.ClientMetrics
}

type Option func(*Client)

// WithExecutor wraps submit, login and history calls in retry/breaker
// handling. Status and result calls stay single-shot: the poller owns
// that policy.
func WithExecutor(exec *resilience.Executor) Option {
	return func(c *Client) { c.exec = exec }
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit uploads the audio file as multipart field "file" and returns the
// server-assigned job id. When body is seekable the upload is retryable;
// otherwise it runs single-shot.
func (c *Client) Submit(ctx context.Context, auth domain.AuthContext, fileName string, body io.Reader, language string) (string, error) {
	if err := auth.Validate(); err != nil {
		return "", err
	}
	if language == "" {
		language = defaultLanguage
	}

	endpoint := auth.BaseURL() + "/upload?language=" + url.QueryEscape(language)
	start := time.Now()

	var jobID string
	attempt := func(ctx context.Context) error {
		if seeker, ok := body.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return fmt.Errorf("rewind upload body: %w", err)
			}
		}
		resp, err := c.postMultipart(ctx, "submit", endpoint, auth, func(mw *multipart.Writer) error {
			part, err := mw.CreateFormFile("file", fileName)
			if err != nil {
				return err
			}
			_, err = io.Copy(part, body)
			return err
		})
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var payload struct {
			JobID string `json:"job_id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return domain.WrapError(domain.ErrProtocol, "submit", err)
		}
		if payload.JobID == "" {
			return domain.WrapError(domain.ErrProtocol, "submit", fmt.Errorf("response missing job_id"))
		}
		jobID = payload.JobID
		return nil
	}

	var err error
	if c.exec != nil && isSeekable(body) {
		err = c.exec.Do(ctx, "submit", attempt, classifyAPIError)
	} else {
		err = attempt(ctx)
	}
	if c.metrics != nil {
		c.metrics.ObserveUpload(time.Since(start), err)
	}
	if err != nil {
		return "", err
	}
	return jobID, nil
}

// FetchStatus returns the raw server status string for the job.
func (c *Client) FetchStatus(ctx context.Context, auth domain.AuthContext, jobID string) (string, error) {
	if err := auth.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.get(ctx, "status", auth.BaseURL()+"/status/"+url.PathEscape(jobID), auth)
	if c.metrics != nil {
		defer c.metrics.ObservePollCycle(time.Since(start))
	}
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", domain.WrapError(domain.ErrProtocol, "status", err)
	}
	if payload.Status == "" {
		return "", domain.WrapError(domain.ErrProtocol, "status", fmt.Errorf("response missing status"))
	}
	if c.metrics != nil {
		c.metrics.IncStatusPoll(payload.Status)
	}
	return payload.Status, nil
}

// FetchResult returns the raw result payload for the normalizer. Callers
// invoke it only after status resolved to "done".
func (c *Client) FetchResult(ctx context.Context, auth domain.AuthContext, jobID string) ([]byte, error) {
	if err := auth.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, "result", auth.BaseURL()+"/result/"+url.PathEscape(jobID), auth)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrNetwork, "result", err)
	}
	return body, nil
}

// Login exchanges credentials for a session token via the form login
// endpoint. Error bodies carry the message in a "detail" field.
func (c *Client) Login(ctx context.Context, serverURL, username, password string) (domain.Session, error) {
	auth := domain.AuthContext{ServerURL: serverURL}
	if err := auth.Validate(); err != nil {
		return domain.Session{}, err
	}

	var session domain.Session
	attempt := func(ctx context.Context) error {
		resp, err := c.postMultipart(ctx, "login", auth.BaseURL()+"/auth/login", auth, func(mw *multipart.Writer) error {
			if err := mw.WriteField("username", username); err != nil {
				return err
			}
			return mw.WriteField("password", password)
		})
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var payload struct {
			AccessToken string `json:"access_token"`
			Username    string `json:"username"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return domain.WrapError(domain.ErrProtocol, "login", err)
		}
		if payload.AccessToken == "" {
			return domain.WrapError(domain.ErrProtocol, "login", fmt.Errorf("response missing access_token"))
		}
		session = domain.Session{AccessToken: payload.AccessToken, Username: payload.Username}
		return nil
	}

	var err error
	if c.exec != nil {
		err = c.exec.Do(ctx, "login", attempt, classifyAPIError)
	} else {
		err = attempt(ctx)
	}
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// FetchHistory returns the server's authoritative job list.
func (c *Client) FetchHistory(ctx context.Context, auth domain.AuthContext) ([]domain.HistoryEntry, error) {
	if err := auth.Validate(); err != nil {
		return nil, err
	}

	var entries []domain.HistoryEntry
	attempt := func(ctx context.Context) error {
		resp, err := c.get(ctx, "history", auth.BaseURL()+"/history", auth)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var payload struct {
			Jobs []historyWireEntry `json:"jobs"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return domain.WrapError(domain.ErrProtocol, "history", err)
		}
		entries = make([]domain.HistoryEntry, 0, len(payload.Jobs))
		for _, wire := range payload.Jobs {
			entries = append(entries, wire.toDomain())
		}
		return nil
	}

	var err error
	if c.exec != nil {
		err = c.exec.Do(ctx, "history", attempt, classifyAPIError)
	} else {
		err = attempt(ctx)
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteJob removes the job on the server side.
func (c *Client) DeleteJob(ctx context.Context, auth domain.AuthContext, jobID string) error {
	if err := auth.Validate(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodDelete, auth.BaseURL()+"/history/"+url.PathEscape(jobID), nil, auth)
	if err != nil {
		return err
	}
	resp, err := c.do("delete", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

type historyWireEntry struct {
	JobID         string `json:"job_id"`
	Filename      string `json:"filename"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"created_at"`
	HasTranscript bool   `json:"has_transcript"`
	HasSummary    bool   `json:"has_summary"`
	Language      string `json:"language"`
}

func (w historyWireEntry) toDomain() domain.HistoryEntry {
	status, known := domain.StatusFromServer(w.Status)
	if !known {
		// Preserve the server's word for display rather than guessing.
		status = domain.JobStatus(strings.TrimSpace(w.Status))
	}
	entry := domain.HistoryEntry{
		Job: domain.Job{
			JobID:    w.JobID,
			Status:   status,
			FileName: w.Filename,
			Language: w.Language,
		},
		HasTranscript: w.HasTranscript,
		HasSummary:    w.HasSummary,
	}
	if w.CreatedAt > 0 {
		entry.CreatedAt = time.Unix(w.CreatedAt, 0).UTC()
	}
	return entry
}

func isSeekable(r io.Reader) bool {
	_, ok := r.(io.Seeker)
	return ok
}
