// Package tui renders the countdown for terminals: one-shot status output,
// the live bubbletea view, the event summary, and the entry form.
//
// Import rules:
//   - CAN import: internal/constants, internal/errors, internal/countdown, internal/event
//   - MUST NOT import: internal/cli, internal/stream, internal/config
package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/countdown"
	ctderrors "github.com/mrz1836/countdown/internal/errors"
)

// Output format names accepted by NewOutput.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for structured output to a terminal.
type Output interface {
	// Success prints a success message.
	Success(msg string)
	// Error prints an error message.
	Error(err error)
	// Warning prints a warning message.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Remaining prints the time left until target.
	Remaining(r countdown.Remaining, target time.Time) error
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
}

// RemainingReport is the JSON shape of a one-shot countdown status.
type RemainingReport struct {
	Target         time.Time           `json:"target"`
	Remaining      countdown.Remaining `json:"remaining"`
	TotalSeconds   int64               `json:"total_seconds"`
	Expired        bool                `json:"expired"`
	DisplayMessage string              `json:"display,omitempty"`
}

// NewRemainingReport builds the report for r.
func NewRemainingReport(r countdown.Remaining, target time.Time) RemainingReport {
	return RemainingReport{
		Target:         target,
		Remaining:      r,
		TotalSeconds:   r.TotalMillis() / constants.MillisPerSecond,
		Expired:        r.Expired(),
		DisplayMessage: r.String(),
	}
}

// TTYOutput provides styled output for terminal displays.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
	loc    *time.Location
}

// NewTTYOutput creates a new TTYOutput.
// Respects NO_COLOR via CheckNoColor.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()

	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
		loc:    time.Local,
	}
}

// WithLocation sets the zone deadlines are shown in.
func (o *TTYOutput) WithLocation(loc *time.Location) *TTYOutput {
	if loc != nil {
		o.loc = loc
	}
	return o
}

// Success prints a success message.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints an error message followed by a suggested action when one is known.
func (o *TTYOutput) Error(err error) {
	msg, action := ctderrors.Actionable(err)
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+msg))
	if action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// Warning prints a warning message.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints an informational message.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render("ℹ "+msg))
}

// Remaining prints the breakdown and the deadline.
func (o *TTYOutput) Remaining(r countdown.Remaining, target time.Time) error {
	if r.Expired() {
		_, err := fmt.Fprintf(o.w, "%s\n%s\n",
			o.styles.Error.Render(ctderrors.ErrEventEnded.Error()),
			o.styles.Dim.Render("Deadline: "+FormatDeadline(target, o.loc)))
		return err
	}

	style := o.styles.Info
	if r.Total() < FinalMinuteThreshold*time.Second {
		style = o.styles.Warning
	}
	_, err := fmt.Fprintf(o.w, "%s\n%s\n",
		style.Render(r.String()),
		o.styles.Dim.Render("Deadline: "+FormatDeadline(target, o.loc)))
	return err
}

// JSON outputs a value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeIndented(o.w, v)
}

// JSONOutput provides plain JSON output without styling.
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

type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success outputs {"type":"success","message":...}.
func (o *JSONOutput) Success(msg string) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(jsonMessage{Type: "success", Message: msg})
}

// Error outputs the error with its user message and suggested action.
// Details carries the raw error text when it differs from the message.
func (o *JSONOutput) Error(err error) {
	msg, action := ctderrors.Actionable(err)
	out := jsonError{
		Type:       "error",
		Message:    msg,
		Suggestion: action,
	}
	if raw := err.Error(); raw != msg {
		out.Details = raw
	} else if inner := errors.Unwrap(err); inner != nil {
		out.Details = inner.Error()
	}

	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(out)
}

// Warning outputs {"type":"warning","message":...}.
func (o *JSONOutput) Warning(msg string) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(jsonMessage{Type: "warning", Message: msg})
}

// Info outputs {"type":"info","message":...}.
func (o *JSONOutput) Info(msg string) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(jsonMessage{Type: "info", Message: msg})
}

// Remaining outputs a RemainingReport.
func (o *JSONOutput) Remaining(r countdown.Remaining, target time.Time) error {
	return encodeIndented(o.w, NewRemainingReport(r, target))
}

// JSON outputs a value as formatted JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeIndented(o.w, v)
}

func encodeIndented(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// NewOutput creates the appropriate output based on format.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}

// ValidateFormat reports whether format names a known output format.
func ValidateFormat(format string) error {
	switch format {
	case "", FormatText, FormatJSON:
		return nil
	default:
		return ctderrors.NewExitCode2Error(
			ctderrors.Wrapf(ctderrors.ErrInvalidOutputFormat, "%q (use text or json)", format))
	}
}
