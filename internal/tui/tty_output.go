package tui

import (
	"fmt"
	"io"

	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// TTYOutput provides styled terminal output using Lip Gloss.
// Respects NO_COLOR via CheckNoColor.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
}

// NewTTYOutput creates a new TTYOutput.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()

	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
	}
}

// Success outputs a success message with a ✓ icon.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error outputs the user-facing message for err with a ✗ icon, followed by
// the suggested action when one is known.
func (o *TTYOutput) Error(err error) {
	msg, action := taskerrors.Actionable(err)
	if msg != err.Error() {
		msg = fmt.Sprintf("%s (%s)", msg, err.Error())
	}
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+msg))
	if action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// Warning outputs a warning message with a ⚠ icon.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info outputs an informational message.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// Lines writes each line as is.
func (o *TTYOutput) Lines(lines []string) {
	for _, l := range lines {
		_, _ = fmt.Fprintln(o.w, l)
	}
}

// JSON outputs an arbitrary value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}
