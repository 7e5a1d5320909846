// Package main provides the CLI entry point for model-converter, a tool
// that converts REXS model files between the tree and JSON wire formats
// and optionally merges several files into one model.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/dbload"
	"go.rexsapi.dev/rexsapi/format"
	"go.rexsapi.dev/rexsapi/model"
	"go.rexsapi.dev/rexsapi/parser"
	"go.rexsapi.dev/rexsapi/profiler"
	"go.rexsapi.dev/rexsapi/rexscli"
	"go.rexsapi.dev/rexsapi/rexslog"
	"go.rexsapi.dev/rexsapi/serializer"
	"go.rexsapi.dev/rexsapi/version"
)

func main() {
	cfg := rexscli.NewConfig()
	logCfg := rexslog.NewConfig()
	prof := profiler.New()

	var (
		output string
		merge  bool
	)

	rootCmd := &cobra.Command{
		Use:   "model-converter [flags] -o <output> <file> [...]",
		Short: "Convert REXS model files between wire formats",
		Long: `model-converter loads each given REXS model file and writes it in the format
implied by the output path's extension. With --merge, all input files are
combined into a single output model, renumbering ids to keep references
intact.`,
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
			return run(cfg, logCfg, output, merge, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	prof.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().StringVarP(&output, "output", "o", "",
		"output file (single input or --merge) or directory (several inputs)")
	rootCmd.Flags().BoolVar(&merge, "merge", false,
		"merge all inputs into one output model")

	err := rootCmd.MarkFlagRequired("output")
	if err != nil {
		fmt.Fprintf(os.Stderr, "mark output required: %v\n", err)
	}

	err = rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *rexscli.Config, logCfg *rexslog.Config, output string, merge bool, args []string) error {
	handler, err := logCfg.Handler(os.Stderr)
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

	models := make([]*model.Model, 0, len(files))

	for _, file := range files {
		data, readErr := os.ReadFile(file)
		if readErr != nil {
			return fmt.Errorf("read %s: %w", file, readErr)
		}

		m, res := p.Load(file, data, mode)
		if m == nil {
			return fmt.Errorf("load %s: %d findings, first: %s", file, len(res.Messages()), res.Messages()[0].Text)
		}

		if !res.OK() {
			logger.Warn("model has findings", "file", file, "findings", len(res.Messages()))
		}

		models = append(models, m)
	}

	ser := serializer.New()

	if merge {
		merged := models[0]
		for _, m := range models[1:] {
			merged = model.MergeModels(merged, m)
		}

		return writeModel(ser, checker, merged, output)
	}

	if len(files) == 1 {
		return writeModel(ser, checker, models[0], output)
	}

	for i, m := range models {
		target := filepath.Join(output, filepath.Base(files[i]))

		err = writeModel(ser, checker, m, target)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeModel(ser *serializer.Serializer, checker *format.ExtensionChecker, m *model.Model, path string) error {
	f, err := checker.Sniff(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	data, err := ser.Write(m, f)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}

	err = os.WriteFile(path, data, 0o644) //nolint:gosec // model files are world-readable artifacts
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("%s: written (%s, %d components)\n", path, f, len(m.Components))

	return nil
}
