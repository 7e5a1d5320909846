package rexslog

import (
	"log/slog"

	"go.rexsapi.dev/rexsapi/result"
)

// LogFindings writes one record per diagnostic in res to logger. The
// severity after mode downgrading picks the slog level: warnings log at
// Warn, errors and criticals at Error. Every record carries the model
// file path and the REXS severity name; a known byte offset is attached
// as well.
func LogFindings(logger *slog.Logger, file string, res *result.Result) {
	for _, msg := range res.Messages() {
		attrs := []any{
			slog.String("file", file),
			slog.String("severity", msg.Severity.String()),
		}
		if msg.Offset >= 0 {
			attrs = append(attrs, slog.Int64("offset", msg.Offset))
		}

		if msg.Severity == result.Warning {
			logger.Warn(msg.Text, attrs...)
		} else {
			logger.Error(msg.Text, attrs...)
		}
	}
}
