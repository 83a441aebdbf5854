package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/services"
	"github.com/desertthunder/tareas/internal/shared"
)

const (
	InvalidTitleNotice = "Ingrese un título válido."
	ConnectionNotice   = "No se pudo conectar con el servidor."
	RenameLabel        = "Nuevo título:"
)

var (
	ErrInvalidTitle    = fmt.Errorf("%w: %s", shared.ErrInvalidInput, InvalidTitleNotice)
	ErrRenameAbandoned = errors.New("rename abandoned")
)

// Outcome is what a finished operation hands back to the state owner.
type Outcome struct {
	Message    string        // Server-supplied mensaje, empty for plain loads
	Tasks      []models.Task // Reloaded collection in server order
	Reloaded   bool          // Tasks holds a fresh collection
	ClearInput bool          // The new-task input should be emptied
	ReloadErr  error         // Reload after a successful write failed
}

// ControllerOpts contains configuration for a [Controller].
type ControllerOpts struct {
	Serialize bool // Hold a lock across each write+reload cycle
	Logger    *log.Logger
}

// Controller runs user intents against a [services.TaskService].
//
// Every mutation is one write followed by one full reload. Nothing is changed locally.
type Controller struct {
	svc    services.TaskService
	logger *log.Logger
	mu     *sync.Mutex
}

// NewController creates a Controller over svc.
func NewController(svc services.TaskService, opts ControllerOpts) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	c := &Controller{svc: svc, logger: opts.Logger}
	if opts.Serialize {
		c.mu = &sync.Mutex{}
	}
	return c
}

// Load fetches the full collection.
func (c *Controller) Load(ctx context.Context) (*Outcome, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("%w: task service not initialized", shared.ErrServiceUnavailable)
	}

	c.lock()
	defer c.unlock()

	tasks, err := c.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	c.logger.Debug("loaded tasks", "count", len(tasks))
	return &Outcome{Tasks: tasks, Reloaded: true}, nil
}

// Create adds a task titled exactly as typed.
//
// A title that is blank after trimming returns [ErrInvalidTitle] without any request.
func (c *Controller) Create(ctx context.Context, title string) (*Outcome, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidTitle
	}

	out, err := c.mutate(ctx, "create", func(ctx context.Context) (string, error) {
		return c.svc.Create(ctx, title)
	})
	if err != nil {
		return nil, err
	}

	out.ClearInput = true
	return out, nil
}

// Remove deletes the task identified by id.
func (c *Controller) Remove(ctx context.Context, id models.ID) (*Outcome, error) {
	return c.mutate(ctx, "remove", func(ctx context.Context) (string, error) {
		return c.svc.Delete(ctx, id)
	})
}

// Rename asks p for a new title and writes it.
//
// Cancelling the prompt or answering with blank text returns [ErrRenameAbandoned] and sends nothing.
func (c *Controller) Rename(ctx context.Context, id models.ID, current string, p Prompter) (*Outcome, error) {
	if p == nil {
		return nil, ErrRenameAbandoned
	}

	var res PromptResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r, ok := <-p.Prompt(ctx, RenameLabel, current):
		if !ok {
			return nil, ErrRenameAbandoned
		}
		res = r
	}

	if !res.OK || strings.TrimSpace(res.Value) == "" {
		c.logger.Debug("rename abandoned", "id", id)
		return nil, ErrRenameAbandoned
	}

	return c.mutate(ctx, "rename", func(ctx context.Context) (string, error) {
		return c.svc.Rename(ctx, id, res.Value)
	})
}

// Toggle writes the opposite of task's completion flag.
func (c *Controller) Toggle(ctx context.Context, task models.Task) (*Outcome, error) {
	next := task.Completed.Flip()
	return c.mutate(ctx, "toggle", func(ctx context.Context) (string, error) {
		return c.svc.SetCompleted(ctx, task.ID, next)
	})
}

// mutate performs one write and then one reload.
//
// A failed write skips the reload. A failed reload keeps the write's message.
func (c *Controller) mutate(ctx context.Context, op string, write func(context.Context) (string, error)) (*Outcome, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("%w: task service not initialized", shared.ErrServiceUnavailable)
	}

	c.lock()
	defer c.unlock()

	msg, err := write(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.logger.Info(op, "mensaje", msg)

	tasks, err := c.svc.List(ctx)
	if err != nil {
		c.logger.Warn("reload after write failed", "op", op, "error", err)
		return &Outcome{Message: msg, ReloadErr: fmt.Errorf("reload: %w", err)}, nil
	}

	return &Outcome{Message: msg, Tasks: tasks, Reloaded: true}, nil
}

func (c *Controller) lock() {
	if c.mu != nil {
		c.mu.Lock()
	}
}

func (c *Controller) unlock() {
	if c.mu != nil {
		c.mu.Unlock()
	}
}
