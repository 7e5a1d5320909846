package rexscli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.rexsapi.dev/rexsapi/format"
	"go.rexsapi.dev/rexsapi/result"
)

// Sentinel errors reported by the CLI configuration.
var (
	// ErrInvalidMapping indicates a malformed suffix:format pair.
	ErrInvalidMapping = errors.New("invalid extension mapping")
	// ErrInvalidMode indicates both --mode-strict and --mode-relaxed
	// were given.
	ErrInvalidMode = errors.New("mode-strict and mode-relaxed are mutually exclusive")
	// ErrReadMappingFile indicates the YAML mapping file could not be
	// read or parsed.
	ErrReadMappingFile = errors.New("read mapping file")
)

// Flags holds CLI flag names for model-tool configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Database    string
	Recurse     string
	Mapping     string
	MappingFile string
	ModeStrict  string
	ModeRelaxed string
}

// Config holds CLI flag values shared by the model tools.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Mode] and
// [Config.NewExtensionChecker] to turn the raw flag values into pipeline
// inputs.
type Config struct {
	Flags       Flags
	Database    string
	Mappings    []string
	MappingFile string
	Recurse     bool
	ModeStrict  bool
	ModeRelaxed bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Database:    "database",
		Recurse:     "recurse",
		Mapping:     "mapping",
		MappingFile: "mapping-file",
		ModeStrict:  "mode-strict",
		ModeRelaxed: "mode-relaxed",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds the shared model-tool flags to the given
// [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Database, c.Flags.Database, "d", "",
		"path to the model database directory")
	flags.BoolVarP(&c.Recurse, c.Flags.Recurse, "r", false,
		"recurse into directories given as model paths")
	flags.StringArrayVarP(&c.Mappings, c.Flags.Mapping, "m", nil,
		"custom extension mapping as suffix:format (repeatable; format is tree, json, or zip)")
	flags.StringVar(&c.MappingFile, c.Flags.MappingFile, "",
		"YAML file with additional extension mappings")
	flags.BoolVar(&c.ModeStrict, c.Flags.ModeStrict, false,
		"report every finding at its authored severity")
	flags.BoolVar(&c.ModeRelaxed, c.Flags.ModeRelaxed, false,
		"downgrade non-critical findings to warnings")
}

// RegisterCompletions registers shell completions for the shared flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Database,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Database, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Mapping,
		cobra.FixedCompletions(nil, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Mapping, err)
	}

	return nil
}

// Mode resolves the strict/relaxed flags into a [result.Mode]. Strict is
// the default; giving both flags is an error.
func (c *Config) Mode() (result.Mode, error) {
	if c.ModeStrict && c.ModeRelaxed {
		return result.Strict, ErrInvalidMode
	}

	if c.ModeRelaxed {
		return result.Relaxed, nil
	}

	return result.Strict, nil
}

// mappingEntry is one suffix-to-format pair in a YAML mapping file.
type mappingEntry struct {
	Suffix string `yaml:"suffix"`
	Format string `yaml:"format"`
}

// NewExtensionChecker builds an [format.ExtensionChecker] carrying every
// custom mapping from the repeated -m flags and the optional YAML mapping
// file. Flag mappings are registered after file mappings; when two custom
// mappings match with the same suffix length the one registered first is
// used, so a file entry wins over a flag with the same suffix length.
func (c *Config) NewExtensionChecker() (*format.ExtensionChecker, error) {
	checker := format.NewExtensionChecker()

	if c.MappingFile != "" {
		data, err := os.ReadFile(c.MappingFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadMappingFile, err)
		}

		var entries []mappingEntry

		err = yaml.Unmarshal(data, &entries)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadMappingFile, err)
		}

		for _, e := range entries {
			err = registerMapping(checker, e.Suffix, e.Format)
			if err != nil {
				return nil, err
			}
		}
	}

	for _, m := range c.Mappings {
		suffix, formatName, ok := strings.Cut(m, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q (want suffix:format)", ErrInvalidMapping, m)
		}

		err := registerMapping(checker, suffix, formatName)
		if err != nil {
			return nil, err
		}
	}

	return checker, nil
}

func registerMapping(checker *format.ExtensionChecker, suffix, formatName string) error {
	if suffix == "" {
		return fmt.Errorf("%w: empty suffix", ErrInvalidMapping)
	}

	f, err := parseFormat(formatName)
	if err != nil {
		return err
	}

	checker.Register(suffix, f)

	return nil
}

func parseFormat(s string) (format.Format, error) {
	switch strings.ToLower(s) {
	case "tree", "xml":
		return format.Tree, nil
	case "json":
		return format.JSON, nil
	case "zip":
		return format.Zip, nil
	}

	return 0, fmt.Errorf("%w: unknown format %q", ErrInvalidMapping, s)
}

// CollectModelFiles expands the positional arguments into the list of
// model files to process. Directory arguments are listed (recursively
// with [Config.Recurse]); only paths the checker recognizes are kept.
// Plain-file arguments are always kept so an unrecognized extension still
// surfaces as a load error instead of being silently skipped.
func (c *Config) CollectModelFiles(checker *format.ExtensionChecker, args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != arg && !c.Recurse {
					return fs.SkipDir
				}

				return nil
			}

			if _, sniffErr := checker.Sniff(path); sniffErr == nil {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	return files, nil
}
