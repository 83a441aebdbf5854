package tasks

import (
	"errors"
	"time"

	"github.com/desertthunder/tareas/internal/models"
)

// NotificationLifetime is how long a notification stays visible.
const NotificationLifetime = 3 * time.Second

// Banner holds the single transient notification.
//
// Each Set starts a new generation; an expiry scheduled for an older generation is ignored, so a newer message is
// never cleared early by an earlier timer.
type Banner struct {
	text    string
	gen     uint64
	expires time.Time
}

// Set replaces the current text and returns its generation.
func (b *Banner) Set(text string, now time.Time) uint64 {
	b.gen++
	b.text = text
	b.expires = now.Add(NotificationLifetime)
	return b.gen
}

// Expire clears the text if gen is still current and reports whether it did.
func (b *Banner) Expire(gen uint64) bool {
	if gen != b.gen || b.text == "" {
		return false
	}
	b.text = ""
	return true
}

// Text returns the visible text at now.
func (b Banner) Text(now time.Time) string {
	if b.text == "" || !now.Before(b.expires) {
		return ""
	}
	return b.text
}

// Current returns the text until it is expired, ignoring the clock.
func (b Banner) Current() string { return b.text }

// State is the client-side record rendered by the UI: the task list, the new-task input and the notification.
type State struct {
	Tasks  []models.Task
	Input  string
	Banner Banner
}

// Apply folds a finished operation into the state.
//
// It returns the banner generation to expire after [NotificationLifetime], or 0 when nothing was shown.
func (s *State) Apply(o *Outcome, now time.Time) uint64 {
	if o == nil {
		return 0
	}
	if o.Reloaded {
		s.Tasks = o.Tasks
	}
	if o.ClearInput {
		s.Input = ""
	}
	if o.Message == "" {
		return 0
	}
	return s.Banner.Set(o.Message, now)
}

// Fail shows the notification for err and leaves the list untouched.
//
// Abandoned renames are silent; blank titles show the validation text; anything else is a connection problem.
func (s *State) Fail(err error, now time.Time) uint64 {
	switch {
	case err == nil, errors.Is(err, ErrRenameAbandoned):
		return 0
	case errors.Is(err, ErrInvalidTitle):
		return s.Banner.Set(InvalidTitleNotice, now)
	default:
		return s.Banner.Set(ConnectionNotice, now)
	}
}
