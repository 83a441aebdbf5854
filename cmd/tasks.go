package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/tareas/internal/formatter"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/shared"
	"github.com/desertthunder/tareas/internal/tasks"
	"github.com/urfave/cli/v3"
)

// List loads the collection and prints it in the requested format.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	out, err := r.controller.Load(ctx)
	if err != nil {
		return err
	}

	if len(out.Tasks) == 0 && f == formatter.Text {
		return r.writePlainln("No hay tareas.")
	}
	return r.writeTasks(out.Tasks, f)
}

// Add creates a task, then prints the server message and the reloaded list.
//
// A missing or blank title is rejected by the controller before anything is sent.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	out, err := r.controller.Create(ctx, cmd.StringArg("title"))
	if err != nil {
		return err
	}
	return r.report(out)
}

// Rename replaces a task's title. Without a title argument it prompts on stdin.
//
// A blank answer or EOF abandons the rename without sending anything. The command line drops blank
// arguments, so `rename 1 "  "` also lands in the prompt.
func (r *Runner) Rename(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	p := r.stdinPrompter()
	if title := cmd.StringArg("title"); title != "" {
		p = tasks.Answer(title, true)
	}

	out, err := r.controller.Rename(ctx, id, "", p)
	if errors.Is(err, tasks.ErrRenameAbandoned) {
		r.logger.Debug("rename abandoned", "id", id)
		return nil
	}
	if err != nil {
		return err
	}
	return r.report(out)
}

// Toggle finds the task in a fresh load and writes the opposite flag.
func (r *Runner) Toggle(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	task, err := r.find(ctx, id)
	if err != nil {
		return err
	}

	out, err := r.controller.Toggle(ctx, task)
	if err != nil {
		return err
	}
	return r.report(out)
}

// Remove deletes a task by id.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}

	out, err := r.controller.Remove(ctx, id)
	if err != nil {
		return err
	}
	return r.report(out)
}

// Export loads the collection and writes it to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	f, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	out, err := r.controller.Load(ctx)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(out.Tasks, f, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported tasks", "count", len(out.Tasks), "path", path)
	return r.writePlainln("✓ %d tareas exportadas a %s", len(out.Tasks), path)
}

// report prints the server message followed by the reloaded list.
func (r *Runner) report(out *tasks.Outcome) error {
	if out.Message != "" {
		if err := r.writePlainln("%s", out.Message); err != nil {
			return err
		}
	}
	if out.ReloadErr != nil {
		r.logger.Warn("could not reload tasks", "error", out.ReloadErr)
		return nil
	}
	if len(out.Tasks) == 0 {
		return r.writePlainln("No hay tareas.")
	}
	return r.writeTasks(out.Tasks, formatter.Text)
}

func (r *Runner) find(ctx context.Context, id models.ID) (models.Task, error) {
	out, err := r.controller.Load(ctx)
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range out.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: id %s", shared.ErrTaskNotFound, id)
}

func requireID(cmd *cli.Command) (models.ID, error) {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return "", fmt.Errorf("%w: task id is required", shared.ErrMissingArgument)
	}
	return models.ID(id), nil
}
