package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/services"
	"github.com/desertthunder/tareas/internal/shared"
	"github.com/desertthunder/tareas/internal/tasks"
	tu "github.com/desertthunder/tareas/internal/testing"
)

func seed() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Comprar pan"},
		{ID: "2", Title: "Lavar platos", Completed: models.Done},
	}
}

// run executes the CLI with args against r and returns stdout.
func run(t *testing.T, r *Runner, args ...string) (string, error) {
	t.Helper()
	out := r.output.(*bytes.Buffer)
	out.Reset()
	err := r.App().Run(context.Background(), append([]string{"tareas"}, args...))
	return out.String(), err
}

func newTestRunner(svc *tu.FakeTaskService, input string) *Runner {
	opts := RunnerOpts{
		Logger: log.New(&bytes.Buffer{}),
		Output: &bytes.Buffer{},
		Input:  strings.NewReader(input),
	}
	if svc != nil {
		opts.Service = svc
	}
	return NewRunner(opts)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			svc := tu.NewFakeTaskService()

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Service: svc,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.service != svc {
				t.Error("expected injected service to be kept")
			}
			if runner.controller == nil {
				t.Error("expected controller to be built")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}

			api, ok := runner.service.(*services.TaskAPI)
			if !ok {
				t.Fatalf("expected a TaskAPI, got %T", runner.service)
			}
			if api.BaseURL() != services.DefaultBaseURL {
				t.Errorf("expected default base URL, got %s", api.BaseURL())
			}
		})

		t.Run("SetLogger rebuilds the owned client", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: log.New(&bytes.Buffer{})})
			before := runner.service

			runner.SetLogger(log.New(&bytes.Buffer{}))
			if runner.service == before {
				t.Error("expected a fresh client after SetLogger")
			}
		})

		t.Run("logs the endpoint it talks to", func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := log.New(buf)
			logger.SetLevel(log.DebugLevel)

			config := shared.DefaultConfig()
			config.API.BaseURL = "http://tareas.test"
			NewRunner(RunnerOpts{Config: config, Logger: logger})

			if !strings.Contains(buf.String(), "http://tareas.test") {
				t.Errorf("expected base URL in debug log, got %q", buf.String())
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes formatted text", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlainln("Hola %s", "mundo"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "Hola mundo\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("returns error on write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Error("expected error on write failure")
			}
		})
	})
}

func TestConfigure(t *testing.T) {
	t.Run("loads config file and applies overrides", func(t *testing.T) {
		e := tu.NewEndpoint(t, seed()...)
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[api]\nbase_url = \"" + e.URL + "\"\n[log]\nlevel = \"debug\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		r := newTestRunner(nil, "")
		out, err := run(t, r, "--config", path, "list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "⏳ Comprar pan") {
			t.Errorf("expected tasks from configured endpoint, got %q", out)
		}
		if r.logger.GetLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", r.logger.GetLevel())
		}
	})

	t.Run("base-url flag wins", func(t *testing.T) {
		e := tu.NewEndpoint(t, seed()...)
		r := newTestRunner(nil, "")

		if _, err := run(t, r, "--base-url", e.URL, "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := e.Methods(); !slices.Equal(got, []string{"GET"}) {
			t.Errorf("expected one GET, got %v", got)
		}
	})

	t.Run("explicit missing config", func(t *testing.T) {
		r := newTestRunner(tu.NewFakeTaskService(), "")
		_, err := run(t, r, "--config", filepath.Join(t.TempDir(), "nope.toml"), "list")
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		r := newTestRunner(tu.NewFakeTaskService(), "")
		_, err := run(t, r, "--log-level", "loud", "list")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestTaskCommands(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		t.Run("text", func(t *testing.T) {
			r := newTestRunner(tu.NewFakeTaskService(seed()...), "")
			out, err := run(t, r, "list")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if out != "⏳ Comprar pan\n✔ Lavar platos\n" {
				t.Errorf("unexpected output %q", out)
			}
		})

		t.Run("empty", func(t *testing.T) {
			r := newTestRunner(tu.NewFakeTaskService(), "")
			out, _ := run(t, r, "list")
			if out != "No hay tareas.\n" {
				t.Errorf("unexpected output %q", out)
			}
		})

		t.Run("csv", func(t *testing.T) {
			r := newTestRunner(tu.NewFakeTaskService(seed()...), "")
			out, err := run(t, r, "list", "--format", "csv")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.HasPrefix(out, "id,titulo,completada\n1,Comprar pan,0\n") {
				t.Errorf("unexpected output %q", out)
			}
		})

		t.Run("bad format", func(t *testing.T) {
			svc := tu.NewFakeTaskService(seed()...)
			r := newTestRunner(svc, "")
			if _, err := run(t, r, "list", "--format", "pdf"); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
			if len(svc.Calls()) != 0 {
				t.Errorf("expected no requests, got %v", svc.Ops())
			}
		})

		t.Run("service failure", func(t *testing.T) {
			svc := tu.NewFakeTaskService()
			svc.ListErr = shared.ErrAPIRequest
			r := newTestRunner(svc, "")
			if _, err := run(t, r, "list"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Add", func(t *testing.T) {
		t.Run("prints message then list", func(t *testing.T) {
			svc := tu.NewFakeTaskService(seed()...)
			r := newTestRunner(svc, "")
			out, err := run(t, r, "add", "Estudiar Go")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.HasPrefix(out, "Tarea creada\n") {
				t.Errorf("expected message first, got %q", out)
			}
			if !strings.HasSuffix(out, "⏳ Estudiar Go\n") {
				t.Errorf("expected new task last, got %q", out)
			}
			if got := svc.Ops(); !slices.Equal(got, []string{"create", "list"}) {
				t.Errorf("expected create then list, got %v", got)
			}
		})

		t.Run("blank title sends nothing", func(t *testing.T) {
			svc := tu.NewFakeTaskService()
			r := newTestRunner(svc, "")
			if _, err := run(t, r, "add", "   "); !errors.Is(err, tasks.ErrInvalidTitle) {
				t.Errorf("expected ErrInvalidTitle, got %v", err)
			}
			if len(svc.Calls()) != 0 {
				t.Errorf("expected no requests, got %v", svc.Ops())
			}
		})

		t.Run("missing title", func(t *testing.T) {
			svc := tu.NewFakeTaskService()
			r := newTestRunner(svc, "")
			if _, err := run(t, r, "add"); !errors.Is(err, tasks.ErrInvalidTitle) {
				t.Errorf("expected ErrInvalidTitle, got %v", err)
			}
			if len(svc.Calls()) != 0 {
				t.Errorf("expected no requests, got %v", svc.Ops())
			}
		})
	})

	t.Run("Rename", func(t *testing.T) {
		t.Run("title argument", func(t *testing.T) {
			svc := tu.NewFakeTaskService(seed()...)
			r := newTestRunner(svc, "")
			out, err := run(t, r, "rename", "1", "Comprar pan integral")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "⏳ Comprar pan integral") {
				t.Errorf("expected renamed task, got %q", out)
			}
			if got := svc.Ops(); !slices.Equal(got, []string{"rename", "list"}) {
				t.Errorf("expected rename then list, got %v", got)
			}
		})

		t.Run("prompts on stdin", func(t *testing.T) {
			svc := tu.NewFakeTaskService(seed()...)
			r := newTestRunner(svc, "Pan dulce\n")
			out, err := run(t, r, "rename", "1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.HasPrefix(out, "Nuevo título: ") {
				t.Errorf("expected prompt, got %q", out)
			}

			calls := svc.Calls()
			if len(calls) != 2 || calls[0].Op != "rename" || calls[0].Title != "Pan dulce" {
				t.Errorf("unexpected calls %+v", calls)
			}
		})

		abandoned := []struct {
			name  string
			input string
			args  []string
		}{
			{"EOF abandons silently", "", []string{"rename", "1"}},
			{"blank answer abandons", "   \n", []string{"rename", "1"}},
			{"empty answer abandons", "\n", []string{"rename", "1"}},
			{"blank argument falls back to prompt", "", []string{"rename", "1", "   "}},
		}
		for _, tt := range abandoned {
			t.Run(tt.name, func(t *testing.T) {
				svc := tu.NewFakeTaskService(seed()...)
				r := newTestRunner(svc, tt.input)
				if _, err := run(t, r, tt.args...); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if len(svc.Calls()) != 0 {
					t.Errorf("expected no requests, got %v", svc.Ops())
				}
			})
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		t.Run("flips flag", func(t *testing.T) {
			svc := tu.NewFakeTaskService(seed()...)
			r := newTestRunner(svc, "")
			if _, err := run(t, r, "toggle", "2"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			calls := svc.Calls()
			if len(calls) != 3 || calls[1].Op != "set_completed" || calls[1].Completed != models.Pending {
				t.Errorf("unexpected calls %+v", calls)
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			svc := tu.NewFakeTaskService(seed()...)
			r := newTestRunner(svc, "")
			if _, err := run(t, r, "toggle", "99"); !errors.Is(err, shared.ErrTaskNotFound) {
				t.Errorf("expected ErrTaskNotFound, got %v", err)
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		svc := tu.NewFakeTaskService(seed()...)
		r := newTestRunner(svc, "")
		out, err := run(t, r, "rm", "1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out != "Tarea eliminada\n✔ Lavar platos\n" {
			t.Errorf("unexpected output %q", out)
		}

		if _, err := run(t, r, "rm"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("report write failure", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Service: tu.NewFakeTaskService(), Output: &tu.FWriter{}})
		err := r.report(&tasks.Outcome{Message: "Tarea creada", ReloadErr: shared.ErrDecode})
		if err == nil {
			t.Error("expected the message write error")
		}
	})

	t.Run("Export", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tareas.json")
		r := newTestRunner(tu.NewFakeTaskService(seed()...), "")
		out, err := run(t, r, "export", "--format", "json", "--output", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "2 tareas exportadas") {
			t.Errorf("unexpected output %q", out)
		}

		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.Contains(content, `"titulo": "Lavar platos"`) {
			t.Errorf("unexpected export %s", content)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		originalDir := tu.MustGetwd(t)
		tu.MustChdir(t, t.TempDir())
		defer tu.MustChdir(t, originalDir)

		r := newTestRunner(tu.NewFakeTaskService(), "")
		out, err := run(t, r, "setup", "config")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "config.toml") {
			t.Errorf("unexpected output %q", out)
		}
		tu.AssertFileExists(t, "config.toml")

		if _, err := run(t, r, "setup", "config"); err == nil {
			t.Error("expected error when config already exists")
		}
	})

	t.Run("database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tareas.db")
		r := newTestRunner(tu.NewFakeTaskService(), "")

		out, err := run(t, r, "setup", "database", "--db", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Database ready") {
			t.Errorf("unexpected output %q", out)
		}
		tu.AssertFileExists(t, path)

		if _, err := run(t, r, "setup", "database", "--db", path, "--rollback"); err != nil {
			t.Fatalf("expected rollback to succeed, got %v", err)
		}
	})
}
