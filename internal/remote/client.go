// Package remote talks to the tasklist REST service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/tasklist-go/internal/task"
)

// DefaultAPIPath is the collection path of the service.
const DefaultAPIPath = "/api/tasklist"

// Op names a client operation.
type Op string

const (
	OpList   Op = "list tasks"
	OpCreate Op = "create task"
	OpUpdate Op = "update task"
	OpDelete Op = "delete task"
)

// Client is the set of calls the task list needs from the service.
// Each call issues exactly one request and returns a *Failure on error.
type Client interface {
	List(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, in task.Input) (task.Task, error)
	Update(ctx context.Context, id int, in task.Input) error
	Delete(ctx context.Context, id int) error
}

// HTTPClient implements Client over HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	apiPath    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// WithAPIPath overrides DefaultAPIPath.
func WithAPIPath(p string) Option {
	return func(h *HTTPClient) {
		if strings.TrimSpace(p) != "" {
			h.apiPath = normalizeAPIPath(p)
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(h *HTTPClient) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHTTPClient creates a client for the service at baseURL.
// No timeout is set; requests are bounded only by their context.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiPath:    DefaultAPIPath,
		httpClient: &http.Client{},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectionURL returns the list/create endpoint.
func (c *HTTPClient) CollectionURL() string {
	return c.baseURL + c.apiPath + "/"
}

// ItemURL returns the update/delete endpoint for id.
func (c *HTTPClient) ItemURL(id int) string {
	return c.baseURL + c.apiPath + "/" + strconv.Itoa(id) + "/"
}

// List fetches every task in server order.
func (c *HTTPClient) List(ctx context.Context) ([]task.Task, error) {
	body, err := c.do(ctx, OpList, http.MethodGet, c.CollectionURL(), nil)
	if err != nil {
		return nil, err
	}

	if err := task.ValidatePayload(body, true); err != nil {
		return nil, &Failure{Kind: KindMalformed, Op: OpList, Err: err}
	}

	var tasks []task.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, &Failure{Kind: KindMalformed, Op: OpList, Err: err}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Create posts a new task and returns the stored record with its id.
func (c *HTTPClient) Create(ctx context.Context, in task.Input) (task.Task, error) {
	body, err := c.do(ctx, OpCreate, http.MethodPost, c.CollectionURL(), in)
	if err != nil {
		return task.Task{}, err
	}

	if err := task.ValidatePayload(body, false); err != nil {
		return task.Task{}, &Failure{Kind: KindMalformed, Op: OpCreate, Err: err}
	}

	var created task.Task
	if err := json.Unmarshal(body, &created); err != nil {
		return task.Task{}, &Failure{Kind: KindMalformed, Op: OpCreate, Err: err}
	}
	return created, nil
}

// Update replaces the task with the given id. Any response body is ignored;
// the caller already holds the new value.
func (c *HTTPClient) Update(ctx context.Context, id int, in task.Input) error {
	_, err := c.do(ctx, OpUpdate, http.MethodPut, c.ItemURL(id), in.WithID(id))
	return err
}

// Delete removes the task with the given id.
func (c *HTTPClient) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, OpDelete, http.MethodDelete, c.ItemURL(id), nil)
	return err
}

// do issues one request and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, op Op, method, url string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With("op", string(op), "method", method, "url", url, "request_id", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", "err", err, "duration", time.Since(start))
		return nil, &Failure{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("read response failed", "status", resp.StatusCode, "err", err)
		return nil, &Failure{Kind: KindNetwork, Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serviceMessage(body)
		logger.Warn("service error", "status", resp.StatusCode, "message", msg, "duration", time.Since(start))
		return nil, &Failure{
			Kind:    KindService,
			Op:      op,
			Status:  resp.StatusCode,
			Message: msg,
			Err:     fmt.Errorf("API error status %d", resp.StatusCode),
		}
	}

	logger.Debug("request done", "status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}

func normalizeAPIPath(p string) string {
	p = strings.TrimSpace(p)
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return ""
	}
	return p
}
