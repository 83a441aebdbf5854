package tasks

import "context"

// PromptResult is the answer to a prompt. OK is false when the user cancelled.
type PromptResult struct {
	Value string
	OK    bool
}

// Prompter asks the user for a line of text without blocking the caller.
//
// The returned channel yields at most one result.
type Prompter interface {
	Prompt(ctx context.Context, label, initial string) <-chan PromptResult
}

// PromptFunc adapts a function to [Prompter].
type PromptFunc func(ctx context.Context, label, initial string) <-chan PromptResult

func (f PromptFunc) Prompt(ctx context.Context, label, initial string) <-chan PromptResult {
	return f(ctx, label, initial)
}

// Reply returns a Prompter that answers with whatever is sent on ch.
//
// The TUI opens its rename dialog, hands Reply(ch) to [Controller.Rename], and later sends the dialog's result on ch.
func Reply(ch <-chan PromptResult) Prompter {
	return PromptFunc(func(context.Context, string, string) <-chan PromptResult { return ch })
}

// Answer returns a Prompter that immediately answers with value.
func Answer(value string, ok bool) Prompter {
	return PromptFunc(func(context.Context, string, string) <-chan PromptResult {
		ch := make(chan PromptResult, 1)
		ch <- PromptResult{Value: value, OK: ok}
		close(ch)
		return ch
	})
}
