// Package main provides the CLI entry point for model-dumper, a tool
// that renders a REXS model file as a browsable component/relation tree.
package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.rexsapi.dev/rexsapi/db"
	"go.rexsapi.dev/rexsapi/dbload"
	"go.rexsapi.dev/rexsapi/parser"
	"go.rexsapi.dev/rexsapi/rexscli"
	"go.rexsapi.dev/rexsapi/version"
)

func main() {
	cfg := rexscli.NewConfig()

	var plain bool

	rootCmd := &cobra.Command{
		Use:   "model-dumper [flags] <file>",
		Short: "Browse a REXS model file as a tree",
		Long: `model-dumper loads a REXS model file and opens an interactive tree browser
over its components, attributes, relations, and load spectrum. When stdout is
not a terminal (or with --plain), the fully expanded tree is printed instead.`,
		Version:       version.String(),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, plain, args[0])
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&plain, "plain", false,
		"print the expanded tree instead of opening the browser")

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *rexscli.Config, plain bool, file string) error {
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

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	p := parser.New(registry, parser.WithExtensionChecker(checker))

	m, res := p.Load(file, data, mode)
	if m == nil {
		return fmt.Errorf("load %s: %d findings, first: %s", file, len(res.Messages()), res.Messages()[0].Text)
	}

	for _, msg := range res.Messages() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", msg.Severity, msg.Text)
	}

	root := buildTree(m)

	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		dumpPlain(root, 0, func(s string) { fmt.Print(s) })

		return nil
	}

	b := newBrowser(root, file)

	// Resizes after startup arrive via WindowSizeMsg; this only seeds
	// the initial viewport height.
	if _, height, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		b.height = height
	}

	_, err = tea.NewProgram(b).Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	return nil
}
