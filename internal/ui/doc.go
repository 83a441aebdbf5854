// Package ui implements an interactive terminal interface for the task list using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [ListView] : browse tasks, each shown as "✔ title" (struck through, dimmed) or "⏳ title"
//  2. [NewTaskView] : type a title and press enter to create it
//  3. [RenameView] : answer the "Nuevo título:" dialog for the selected task
//
// The (view) [Model] owns a [tasks.State] and changes it only inside Update. Every key that touches the server runs a
// [tasks.Controller] operation in a [tea.Cmd]; the outcome re-enters as a message, replaces the list and shows the
// server's message for three seconds. Rename runs as soon as the dialog opens and blocks on a channel until the dialog
// answers, so the prompt never blocks the event loop.
//
// Keys: a/n new, e rename, space/t toggle, d/x delete, r reload, ? help, q quit.
package ui
