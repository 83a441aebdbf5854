// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tareas/internal/models"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Call is one service invocation observed by [FakeTaskService].
type Call struct {
	Op        string // list, create, rename, set_completed, delete
	ID        models.ID
	Title     string
	Completed models.Flag
}

// FakeTaskService is an in-memory implementation of services.TaskService for testing.
//
// Writes return fixed Spanish messages. Error fields inject failures per operation.
type FakeTaskService struct {
	mu     sync.Mutex
	tasks  []models.Task
	nextID int64
	calls  []Call

	ListErr   error
	CreateErr error
	RenameErr error
	ToggleErr error
	DeleteErr error
}

// NewFakeTaskService creates a FakeTaskService seeded with tasks.
func NewFakeTaskService(seed ...models.Task) *FakeTaskService {
	f := &FakeTaskService{tasks: append([]models.Task(nil), seed...)}
	for _, t := range seed {
		if n, err := t.ID.Int64(); err == nil && n > f.nextID {
			f.nextID = n
		}
	}
	return f
}

// Calls returns a copy of the observed calls in order.
func (f *FakeTaskService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Ops returns only the operation names of the observed calls.
func (f *FakeTaskService) Ops() []string {
	calls := f.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

func (f *FakeTaskService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeTaskService) List(ctx context.Context) ([]models.Task, error) {
	f.record(Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task{}, f.tasks...), nil
}

func (f *FakeTaskService) Create(ctx context.Context, title string) (string, error) {
	f.record(Call{Op: "create", Title: title})
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.tasks = append(f.tasks, models.Task{ID: models.IDFromInt(f.nextID), Title: title})
	return "Tarea creada", nil
}

func (f *FakeTaskService) Rename(ctx context.Context, id models.ID, title string) (string, error) {
	f.record(Call{Op: "rename", ID: id, Title: title})
	if f.RenameErr != nil {
		return "", f.RenameErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Title = title
			return "Tarea actualizada", nil
		}
	}
	return "Tarea no encontrada", nil
}

func (f *FakeTaskService) SetCompleted(ctx context.Context, id models.ID, completed models.Flag) (string, error) {
	f.record(Call{Op: "set_completed", ID: id, Completed: completed})
	if f.ToggleErr != nil {
		return "", f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
			return "Tarea actualizada", nil
		}
	}
	return "Tarea no encontrada", nil
}

func (f *FakeTaskService) Delete(ctx context.Context, id models.ID) (string, error) {
	f.record(Call{Op: "delete", ID: id})
	if f.DeleteErr != nil {
		return "", f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return "Tarea eliminada", nil
		}
	}
	return "Tarea no encontrada", nil
}

// Request is an HTTP request observed by [Endpoint].
type Request struct {
	Method string
	Query  string
	Body   string
}

// Endpoint is an httptest server that records every request and answers GET with Tasks
// and every other method with Reply.
type Endpoint struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request

	Tasks []models.Task
	Reply models.Message
}

// NewEndpoint starts an [Endpoint] that is closed when the test ends.
func NewEndpoint(t *testing.T, tasks ...models.Task) *Endpoint {
	t.Helper()

	e := &Endpoint{Tasks: tasks, Reply: models.Message{Text: "ok"}}
	e.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		e.mu.Lock()
		e.requests = append(e.requests, Request{Method: r.Method, Query: r.URL.RawQuery, Body: string(body)})
		tasks, reply := e.Tasks, e.Reply
		e.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			if tasks == nil {
				tasks = []models.Task{}
			}
			json.NewEncoder(w).Encode(tasks)
			return
		}
		json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(e.Server.Close)

	return e
}

// Requests returns a copy of the recorded requests in arrival order.
func (e *Endpoint) Requests() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Request(nil), e.requests...)
}

// Methods returns only the HTTP methods of the recorded requests.
func (e *Endpoint) Methods() []string {
	reqs := e.Requests()
	methods := make([]string, len(reqs))
	for i, r := range reqs {
		methods[i] = r.Method
	}
	return methods
}
