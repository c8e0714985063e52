package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/taskpad/internal/model"
)

const DefaultTimeout = 10 * time.Second

// Store is the task collection as seen from the UI. Each call is a single
// round trip; nothing is retried or cached.
type Store interface {
	List(ctx context.Context, search string) ([]model.Task, error)
	Create(ctx context.Context, draft model.Draft) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, id int) error
}

type Option func(*HTTPStore)

func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPStore) {
		if c != nil {
			s.httpClient = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *HTTPStore) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *HTTPStore) {
		s.log = log
	}
}

// HTTPStore talks to a REST task API rooted at baseURL (for example
// http://localhost:5000/api).
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ Store = (*HTTPStore)(nil)

func New(baseURL string, opts ...Option) (*HTTPStore, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("client: missing base url")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	s := &HTTPStore{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPStore) BaseURL() string {
	return s.baseURL
}

func (s *HTTPStore) List(ctx context.Context, search string) ([]model.Task, error) {
	endpoint := s.baseURL + "/tasks"
	if term := strings.TrimSpace(search); term != "" {
		endpoint += "?" + url.Values{"search": []string{term}}.Encode()
	}
	out := make([]model.Task, 0)
	if err := s.do(ctx, "list", http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HTTPStore) Create(ctx context.Context, draft model.Draft) (model.Task, error) {
	var out model.Task
	if err := s.do(ctx, "create", http.MethodPost, s.baseURL+"/tasks", draft, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (s *HTTPStore) Update(ctx context.Context, task model.Task) (model.Task, error) {
	var out model.Task
	if err := s.do(ctx, "update", http.MethodPut, s.taskURL(task.ID), task, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (s *HTTPStore) Delete(ctx context.Context, id int) error {
	return s.do(ctx, "delete", http.MethodDelete, s.taskURL(id), nil, nil)
}

func (s *HTTPStore) taskURL(id int) string {
	return s.baseURL + "/tasks/" + strconv.Itoa(id)
}

func (s *HTTPStore) do(ctx context.Context, op, method, endpoint string, body any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: %s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("client: %s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Debug().Str("op", op).Str("method", method).Str("url", endpoint).Err(err).Msg("task store request failed")
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	s.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("task store request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StoreError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &StoreError{Op: op, Status: resp.StatusCode, Body: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}
