// Package main provides the CLI entry point for model-checker, a tool
// that validates REXS model files against the model database and reports
// every finding.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/dbload"
	"go.rexsapi.dev/rexsapi/parser"
	"go.rexsapi.dev/rexsapi/profiler"
	"go.rexsapi.dev/rexsapi/rexscli"
	"go.rexsapi.dev/rexsapi/rexslog"
	"go.rexsapi.dev/rexsapi/version"
)

func main() {
	cfg := rexscli.NewConfig()
	logCfg := rexslog.NewConfig()
	prof := profiler.New()

	var logFile string

	rootCmd := &cobra.Command{
		Use:   "model-checker [flags] <file or directory> [...]",
		Short: "Validate REXS model files",
		Long: `model-checker loads each given REXS model file (or every model file found in
a given directory), validates it against the model database, and prints every
finding. The exit code is non-zero if any file failed to validate.`,
		Version:       version.String(),
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return prof.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return prof.Stop()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, logCfg, logFile, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	prof.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().StringVar(&logFile, "log-file", "",
		"write logs to this file in addition to stderr")

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *rexscli.Config, logCfg *rexslog.Config, logFile string, args []string) error {
	pub := rexslog.NewPublisher()

	var wg sync.WaitGroup

	drain := func(w io.Writer) {
		sub := pub.Subscribe()

		wg.Add(1)

		go func() {
			defer wg.Done()

			for entry := range sub.C() {
				_, _ = w.Write(entry)
			}
		}()
	}

	drain(os.Stderr)

	if logFile != "" {
		f, createErr := os.Create(logFile) //nolint:gosec // log path comes from a CLI flag
		if createErr != nil {
			return fmt.Errorf("create log file: %w", createErr)
		}

		defer func() { _ = f.Close() }()

		drain(f)
	}

	defer func() {
		_ = pub.Close()

		wg.Wait()
	}()

	handler, err := logCfg.Handler(pub)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	mode, err := cfg.Mode()
	if err != nil {
		return err
	}

	checker, err := cfg.NewExtensionChecker()
	if err != nil {
		return err
	}

	registry := db.NewRegistry()

	err = registry.LoadFrom(dbload.NewLoader(cfg.Database))
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}

	files, err := cfg.CollectModelFiles(checker, args)
	if err != nil {
		return err
	}

	p := parser.New(registry, parser.WithExtensionChecker(checker))

	failed := 0

	for _, file := range files {
		data, readErr := os.ReadFile(file)
		if readErr != nil {
			logger.Error("read model file", "file", file, "error", readErr)
			failed++

			continue
		}

		m, res := p.Load(file, data, mode)

		rexslog.LogFindings(logger, file, res)

		switch {
		case m == nil:
			fmt.Printf("%s: failed to load\n", file)

			failed++
		case res.OK():
			fmt.Printf("%s: ok (%d components, %d relations)\n", file, len(m.Components), len(m.Relations))
		default:
			fmt.Printf("%s: invalid (%d findings)\n", file, len(res.Messages()))

			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(files))
	}

	return nil
}
