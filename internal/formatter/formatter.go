// package formatter provides functions to export the task list to various formats (text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/shared"
)

const (
	DoneMarker    = "✔"
	PendingMarker = "⏳"
	Untitled      = "(sin título)"
)

// Format names an export format.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists every supported format in help order.
var Formats = []Format{Text, Markdown, CSV, JSON}

// ParseFormat resolves a user-supplied format name. "txt" and "md" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (use text, markdown, csv or json)", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case CSV:
		return ".csv"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

// DisplayTitle returns the title as shown to users; blank titles get a placeholder.
func DisplayTitle(t models.Task) string {
	if strings.TrimSpace(t.Title) == "" {
		return Untitled
	}
	return t.Title
}

// Marker returns the completion marker for t.
func Marker(t models.Task) string {
	if t.Completed.IsDone() {
		return DoneMarker
	}
	return PendingMarker
}

// ToText renders one "marker title" line per task, in the given order
func ToText(tasks []models.Task) []byte {
	var buf bytes.Buffer
	for _, t := range tasks {
		fmt.Fprintf(&buf, "%s %s\n", Marker(t), DisplayTitle(t))
	}
	return buf.Bytes()
}

// ToMarkdown renders a checklist with a short summary
func ToMarkdown(tasks []models.Task) []byte {
	var buf bytes.Buffer

	done := 0
	for _, t := range tasks {
		if t.Completed.IsDone() {
			done++
		}
	}

	buf.WriteString("# Tareas\n\n")
	fmt.Fprintf(&buf, "**Total**: %d\n", len(tasks))
	fmt.Fprintf(&buf, "**Completadas**: %d\n\n", done)

	for _, t := range tasks {
		box := " "
		if t.Completed.IsDone() {
			box = "x"
		}
		fmt.Fprintf(&buf, "- [%s] %s (#%s)\n", box, DisplayTitle(t), t.ID)
	}

	return buf.Bytes()
}

// ToCSV converts tasks to CSV with the wire field names as headers: id, titulo, completada
func ToCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"id", "titulo", "completada"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range tasks {
		record := []string{t.ID.String(), t.Title, fmt.Sprintf("%d", normalize(t.Completed))}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToJSON produces an indented JSON array in the same shape the endpoint serves
func ToJSON(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// Render dispatches to the renderer for f.
func Render(tasks []models.Task, f Format) ([]byte, error) {
	switch f {
	case Markdown:
		return ToMarkdown(tasks), nil
	case CSV:
		return ToCSV(tasks)
	case JSON:
		return ToJSON(tasks)
	case Text:
		return ToText(tasks), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// WriteExport renders tasks and writes them to path.
//
// Defaults to tareas{ext} in the working directory. Parent directories are created.
func WriteExport(tasks []models.Task, f Format, path string) (string, error) {
	if path == "" {
		path = "tareas" + f.Extension()
	}

	data, err := Render(tasks, f)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func normalize(f models.Flag) models.Flag {
	if f.IsDone() {
		return models.Done
	}
	return models.Pending
}
