// Task endpoint [TaskService] implementation
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the hosted workshop endpoint.
const DefaultBaseURL string = "https://umb-web-taller-1.onrender.com"

// RequestIDHeader carries a per-request uuid so client and server logs can be correlated.
const RequestIDHeader = "X-Request-ID"

var _ TaskService = (*TaskAPI)(nil)

// TaskAPI implements [TaskService] against the JSON endpoint.
type TaskAPI struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// TaskAPIOpts contains configuration options for creating a [TaskAPI].
type TaskAPIOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	RequestsPerSecond float64 // 0 disables the limiter
	Logger            *log.Logger
}

// NewTaskAPI creates a new client for the task endpoint.
func NewTaskAPI(opts TaskAPIOpts) *TaskAPI {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &TaskAPI{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    limiter,
		logger:     opts.Logger,
	}
}

// BaseURL returns the endpoint this client talks to.
func (a *TaskAPI) BaseURL() string { return a.baseURL }

// List retrieves every task.
//
// Calls GET on the base URL. Order is whatever the server returns.
func (a *TaskAPI) List(ctx context.Context) ([]models.Task, error) {
	status, body, err := a.do(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		return nil, statusError(status, body)
	}

	var tasks []models.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, fmt.Errorf("%w: task list: %v", shared.ErrDecode, err)
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Create adds a task.
//
// Calls POST on the base URL with {titulo}.
func (a *TaskAPI) Create(ctx context.Context, title string) (string, error) {
	return a.write(ctx, http.MethodPost, a.baseURL, models.CreateRequest{Title: title})
}

// Rename changes the title of a task.
//
// Calls PUT on the base URL with {id, titulo}.
func (a *TaskAPI) Rename(ctx context.Context, id models.ID, title string) (string, error) {
	return a.write(ctx, http.MethodPut, a.baseURL, models.RenameRequest(id, title))
}

// SetCompleted writes the completion flag of a task.
//
// Calls PUT on the base URL with {id, completada}.
func (a *TaskAPI) SetCompleted(ctx context.Context, id models.ID, completed models.Flag) (string, error) {
	return a.write(ctx, http.MethodPut, a.baseURL, models.ToggleRequest(id, completed))
}

// Delete removes a task.
//
// Calls DELETE on base?id=<id>.
func (a *TaskAPI) Delete(ctx context.Context, id models.ID) (string, error) {
	target, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base URL: %v", shared.ErrInvalidConfig, err)
	}

	q := target.Query()
	q.Set("id", id.String())
	target.RawQuery = q.Encode()

	return a.write(ctx, http.MethodDelete, target.String(), nil)
}

// write sends a mutating request and decodes the {mensaje} body.
//
// A decodable message is returned even when the status is not 2xx.
func (a *TaskAPI) write(ctx context.Context, method, target string, payload any) (string, error) {
	status, body, err := a.do(ctx, method, target, payload)
	if err != nil {
		return "", err
	}

	var msg models.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		if status < 200 || status >= 300 {
			return "", statusError(status, body)
		}
		return "", fmt.Errorf("%w: %s response: %v", shared.ErrDecode, method, err)
	}

	if status < 200 || status >= 300 {
		if msg.Text == "" {
			return "", statusError(status, body)
		}
		a.logger.Warn("endpoint returned an error status", "method", method, "status", status, "mensaje", msg.Text)
	}

	return msg.Text, nil
}

func (a *TaskAPI) do(ctx context.Context, method, target string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := shared.GenerateID()
	req.Header.Set(RequestIDHeader, requestID)

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	a.logger.Debug("request", "method", method, "url", target, "request_id", requestID)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	a.logger.Debug("response", "method", method, "status", resp.StatusCode, "request_id", requestID)

	return resp.StatusCode, body, nil
}

func statusError(status int, body []byte) error {
	var msg models.Message
	if err := json.Unmarshal(body, &msg); err == nil && msg.Text != "" {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, status, msg.Text)
	}
	return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, status)
}
