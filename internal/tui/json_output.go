package tui

import (
	"encoding/json"
	"io"

	taskerrors "github.com/MikyStar/CLI-Manager-sub000/internal/errors"
)

// JSONOutput provides structured JSON output for scripts.
// Human oriented messages are dropped; errors are emitted as objects.
type JSONOutput struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{
		w:       w,
		encoder: json.NewEncoder(w),
	}
}

type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success is a no-op for JSON output.
func (o *JSONOutput) Success(_ string) {}

// Error outputs the error as a JSON object.
// Format: {"type": "error", "message": "...", "details": "...", "suggestion": "..."}
func (o *JSONOutput) Error(err error) {
	msg, action := taskerrors.Actionable(err)
	out := jsonError{
		Type:       "error",
		Message:    msg,
		Suggestion: action,
	}
	if msg != err.Error() {
		out.Details = err.Error()
	}
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(out)
}

// Warning is a no-op for JSON output.
func (o *JSONOutput) Warning(_ string) {}

// Info is a no-op for JSON output.
func (o *JSONOutput) Info(_ string) {}

// Lines is a no-op for JSON output; callers emit the data itself through JSON.
func (o *JSONOutput) Lines(_ []string) {}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}
