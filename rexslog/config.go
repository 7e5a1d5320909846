package rexslog

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	levelFlag  = "log-level"
	formatFlag = "log-format"
)

// Config carries the log level and format selected on the command line.
//
// Register the flags with [Config.RegisterFlags], then call
// [Config.Handler] once flags are parsed.
type Config struct {
	Level  string
	Format string
}

// NewConfig returns a Config with the tool defaults: info level, logfmt
// output.
func NewConfig() *Config {
	return &Config{
		Level:  "info",
		Format: string(FormatLogfmt),
	}
}

// RegisterFlags adds the --log-level and --log-format flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, levelFlag, c.Level,
		fmt.Sprintf("log level, one of: %s", LevelStrings()))
	flags.StringVar(&c.Format, formatFlag, c.Format,
		fmt.Sprintf("log format, one of: %s", FormatStrings()))
}

// RegisterCompletions registers shell completions for the log flags on
// cmd. Call after [Config.RegisterFlags].
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	completions := map[string][]string{
		levelFlag:  LevelStrings(),
		formatFlag: FormatStrings(),
	}

	for flag, values := range completions {
		err := cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Handler parses the configured level and format and builds a
// [slog.Handler] writing to w.
func (c *Config) Handler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	return NewHandler(w, level, format)
}
