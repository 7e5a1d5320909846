// Package rexslog provides structured logging for the model tools, built
// on [log/slog].
//
// It supports two output formats ([FormatJSON], [FormatLogfmt]) and the
// standard slog severity levels. Use [NewHandler] to build a handler
// directly, or a [Config] to bind the level/format choice to CLI flags
// via [github.com/spf13/pflag], with shell completions via
// [github.com/spf13/cobra]:
//
//	cfg := rexslog.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	handler, err := cfg.Handler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// [LogFindings] bridges a parser [go.rexsapi.dev/rexsapi/result.Result]
// onto a logger, one record per diagnostic.
//
// A [Publisher] fans log output out to multiple subscribers without ever
// blocking the logging side, which is how model-checker feeds both stderr
// and a --log-file, and how a TUI can show a live log pane:
//
//	pub := rexslog.NewPublisher()
//	handler, err := rexslog.NewHandler(pub, slog.LevelInfo, rexslog.FormatJSON)
//	logger := slog.New(handler)
//
//	sub := pub.Subscribe()
//	go func() {
//	    for entry := range sub.C() {
//	        // Deliver entry to a sink.
//	    }
//	}()
package rexslog
