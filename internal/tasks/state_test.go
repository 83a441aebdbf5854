package tasks

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/shared"
)

func TestBanner(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Visible Until Lifetime", func(t *testing.T) {
		var b Banner
		b.Set("Tarea creada", now)

		if got := b.Text(now); got != "Tarea creada" {
			t.Errorf("expected text right after set, got %q", got)
		}
		if got := b.Text(now.Add(2999 * time.Millisecond)); got != "Tarea creada" {
			t.Errorf("expected text before 3000ms, got %q", got)
		}
		if got := b.Text(now.Add(3000 * time.Millisecond)); got != "" {
			t.Errorf("expected empty text at 3000ms, got %q", got)
		}
	})

	t.Run("Newer Message Overwrites", func(t *testing.T) {
		var b Banner
		first := b.Set("uno", now)
		second := b.Set("dos", now.Add(time.Second))

		if b.Current() != "dos" {
			t.Errorf("expected latest text, got %q", b.Current())
		}
		if b.Expire(first) {
			t.Error("expected stale generation to be ignored")
		}
		if got := b.Text(now.Add(3500 * time.Millisecond)); got != "dos" {
			t.Errorf("expected second message to outlive the first timer, got %q", got)
		}
		if !b.Expire(second) {
			t.Error("expected current generation to expire")
		}
		if b.Current() != "" {
			t.Errorf("expected cleared banner, got %q", b.Current())
		}
		if b.Expire(second) {
			t.Error("expected second expire to be a no-op")
		}
	})

	t.Run("Generations Increase", func(t *testing.T) {
		var b Banner
		if g := b.Set("x", now); g != 1 {
			t.Errorf("expected generation 1, got %d", g)
		}
		if g := b.Set("y", now); g != 2 {
			t.Errorf("expected generation 2, got %d", g)
		}
	})
}

func TestState(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	old := []models.Task{{ID: "1", Title: "viejo"}}

	t.Run("Apply", func(t *testing.T) {
		t.Run("Replaces List Clears Input Shows Message", func(t *testing.T) {
			s := State{Tasks: old, Input: "Buy milk"}
			fresh := []models.Task{{ID: "1", Title: "viejo"}, {ID: "2", Title: "Buy milk"}}

			gen := s.Apply(&Outcome{Message: "Tarea creada", Tasks: fresh, Reloaded: true, ClearInput: true}, now)

			if gen == 0 {
				t.Error("expected a banner generation")
			}
			if len(s.Tasks) != 2 {
				t.Errorf("expected 2 tasks, got %d", len(s.Tasks))
			}
			if s.Input != "" {
				t.Errorf("expected cleared input, got %q", s.Input)
			}
			if s.Banner.Text(now) != "Tarea creada" {
				t.Errorf("expected message, got %q", s.Banner.Text(now))
			}
		})

		t.Run("Empty Reload Replaces List", func(t *testing.T) {
			s := State{Tasks: old}
			s.Apply(&Outcome{Tasks: []models.Task{}, Reloaded: true}, now)
			if len(s.Tasks) != 0 {
				t.Errorf("expected empty list, got %d", len(s.Tasks))
			}
		})

		t.Run("Failed Reload Keeps List", func(t *testing.T) {
			s := State{Tasks: old}
			s.Apply(&Outcome{Message: "Tarea eliminada", ReloadErr: shared.ErrDecode}, now)

			if len(s.Tasks) != 1 {
				t.Errorf("expected list untouched, got %d", len(s.Tasks))
			}
			if s.Banner.Current() != "Tarea eliminada" {
				t.Errorf("expected write message, got %q", s.Banner.Current())
			}
		})

		t.Run("Plain Load Shows Nothing", func(t *testing.T) {
			var s State
			if gen := s.Apply(&Outcome{Tasks: old, Reloaded: true}, now); gen != 0 {
				t.Errorf("expected no banner, got generation %d", gen)
			}
		})

		t.Run("Nil Outcome", func(t *testing.T) {
			s := State{Tasks: old}
			if gen := s.Apply(nil, now); gen != 0 || len(s.Tasks) != 1 {
				t.Error("expected nil outcome to be ignored")
			}
		})
	})

	t.Run("Fail", func(t *testing.T) {
		tc := []struct {
			name string
			err  error
			want string
		}{
			{name: "validation", err: ErrInvalidTitle, want: InvalidTitleNotice},
			{name: "abandoned rename", err: ErrRenameAbandoned, want: ""},
			{name: "wrapped abandoned rename", err: fmt.Errorf("rename: %w", ErrRenameAbandoned), want: ""},
			{name: "transport", err: fmt.Errorf("create: %w", shared.ErrAPIRequest), want: ConnectionNotice},
			{name: "decode", err: shared.ErrDecode, want: ConnectionNotice},
			{name: "unknown", err: errors.New("boom"), want: ConnectionNotice},
			{name: "nil", err: nil, want: ""},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				s := State{Tasks: old, Input: "typed"}
				s.Fail(tt.err, now)

				if got := s.Banner.Text(now); got != tt.want {
					t.Errorf("expected %q, got %q", tt.want, got)
				}
				if len(s.Tasks) != 1 || s.Input != "typed" {
					t.Error("expected list and input to be untouched")
				}
			})
		}
	})
}
