package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID is the opaque, server-assigned task identifier.
//
// The endpoint emits numeric ids, but some backends serialize them as strings.
// Both forms decode; numeric ids are encoded back as bare JSON numbers.
type ID string

// IDFromInt converts a database row id to an [ID].
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// String returns the identifier as text.
func (id ID) String() string { return string(id) }

// Int64 parses the identifier as a base-10 integer.
func (id ID) Int64() (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric task id %q: %w", string(id), err)
	}
	return n, nil
}

func (id ID) numeric() bool {
	digits := strings.TrimPrefix(string(id), "-")
	// "007" and "-" are not valid JSON numbers
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON writes numeric ids as numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid task id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid task id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Flag is the two-valued completion flag, transmitted as the integers 0 and 1.
type Flag int

const (
	Pending Flag = 0
	Done    Flag = 1
)

// IsDone reports whether the flag marks the task as completed.
//
// Only the value 1 counts as completed; anything else renders as pending.
func (f Flag) IsDone() bool { return f == Done }

// Flip returns the opposite flag: 1 becomes 0, everything else becomes 1.
func (f Flag) Flip() Flag {
	if f.IsDone() {
		return Pending
	}
	return Done
}

// UnmarshalJSON accepts 0/1 in any JSON number form (1, 1.0, 1e0), the same as a string, true/false, or null.
//
// Fractional values other than 0 and 1 decode as pending.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false":
		*f = Pending
		return nil
	case "true":
		*f = Done
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid completion flag: %w", err)
		}
		raw = strings.TrimSpace(raw)
	}

	n, err := json.Number(raw).Float64()
	if err != nil {
		return fmt.Errorf("invalid completion flag %q: %w", raw, err)
	}
	if math.IsInf(n, 0) || math.IsNaN(n) || math.Abs(n) > math.MaxInt32 {
		return fmt.Errorf("invalid completion flag %q: out of range", raw)
	}
	if n != math.Trunc(n) {
		*f = Pending
		return nil
	}
	*f = Flag(int(n))
	return nil
}

// Task is a server-owned record.
//
// The client never edits a Task in place; it always re-reads the list after a write.
type Task struct {
	ID        ID     `json:"id"`
	Title     string `json:"titulo"`
	Completed Flag   `json:"completada"`
}

// Message is the body returned by every write operation.
type Message struct {
	Text string `json:"mensaje"`
}

// CreateRequest is the POST body.
type CreateRequest struct {
	Title string `json:"titulo"`
}

// UpdateRequest is the PUT body. Exactly one of Title or Completed is set by the client.
type UpdateRequest struct {
	ID        ID      `json:"id"`
	Title     *string `json:"titulo,omitempty"`
	Completed *Flag   `json:"completada,omitempty"`
}

// RenameRequest builds the PUT body for a title change.
func RenameRequest(id ID, title string) UpdateRequest {
	return UpdateRequest{ID: id, Title: &title}
}

// ToggleRequest builds the PUT body that sets the completion flag.
func ToggleRequest(id ID, completed Flag) UpdateRequest {
	return UpdateRequest{ID: id, Completed: &completed}
}
