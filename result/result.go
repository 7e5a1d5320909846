package result

import "fmt"

// Severity classifies a diagnostic by how much it affects model usability.
type Severity uint8

const (
	// Warning marks a recoverable condition; the model is still usable.
	Warning Severity = iota
	// Error marks a localized failure; the offending element is dropped
	// but a model is still produced.
	Error
	// Critical aborts processing; no model is produced.
	Critical
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Mode controls how authored severities are reported.
type Mode uint8

const (
	// Strict reports every diagnostic at its authored severity.
	Strict Mode = iota
	// Relaxed downgrades every non-Critical severity to Warning at
	// report time, so Result.OK() can be true despite many findings.
	Relaxed
)

// report applies the mode's downgrade policy to an authored severity.
func (m Mode) report(severity Severity) Severity {
	if m == Relaxed && severity != Critical {
		return Warning
	}

	return severity
}

// Message is a single diagnostic entry.
type Message struct {
	// Severity is the severity after mode downgrading has been applied.
	Severity Severity
	// Text is the human-readable diagnostic message.
	Text string
	// Offset is the byte offset in the source document the message
	// relates to, if known. Negative means unknown.
	Offset int64
}

// Result accumulates diagnostics produced while processing a model.
//
// A zero-value Result is ready to use. Use [Result.Add] or
// [Result.Addf] to append diagnostics; the [Mode] supplied at
// construction controls how authored severities are downgraded.
type Result struct {
	mode     Mode
	messages []Message
}

// New creates a Result that reports diagnostics under the given [Mode].
func New(mode Mode) *Result {
	return &Result{mode: mode}
}

// Mode returns the reporting mode this Result was created with.
func (r *Result) Mode() Mode {
	return r.mode
}

// Add appends a diagnostic at the given authored severity, downgrading it
// per the Result's [Mode].
func (r *Result) Add(severity Severity, text string) {
	r.AddAt(severity, text, -1)
}

// AddAt appends a diagnostic with an explicit source byte offset.
func (r *Result) AddAt(severity Severity, text string, offset int64) {
	r.messages = append(r.messages, Message{
		Severity: r.mode.report(severity),
		Text:     text,
		Offset:   offset,
	})
}

// Addf appends a formatted diagnostic at the given authored severity.
func (r *Result) Addf(severity Severity, format string, args ...any) {
	r.Add(severity, fmt.Sprintf(format, args...))
}

// Merge appends every message from other into r, preserving order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}

	r.messages = append(r.messages, other.messages...)
}

// Messages returns all accumulated diagnostics, in the order they were
// added.
func (r *Result) Messages() []Message {
	return r.messages
}

// OK reports whether no Error or Critical diagnostic was recorded (after
// mode downgrading).
func (r *Result) OK() bool {
	return !r.HasIssues()
}

// HasIssues reports whether any Error or Critical diagnostic was recorded.
func (r *Result) HasIssues() bool {
	for _, m := range r.messages {
		if m.Severity >= Error {
			return true
		}
	}

	return false
}

// HasCritical reports whether any Critical diagnostic was recorded.
func (r *Result) HasCritical() bool {
	for _, m := range r.messages {
		if m.Severity == Critical {
			return true
		}
	}

	return false
}

// Count returns the number of messages at or above the given severity.
func (r *Result) Count(min Severity) int {
	n := 0

	for _, m := range r.messages {
		if m.Severity >= min {
			n++
		}
	}

	return n
}
