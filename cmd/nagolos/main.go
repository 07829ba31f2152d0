// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nagolos CLI. The root command
// converts one document; dict maintains stress dictionaries.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nagolos/internal/logging"
	"github.com/pdiddy/nagolos/internal/pipeline"
	"github.com/pdiddy/nagolos/internal/secrets"
	"github.com/pdiddy/nagolos/internal/source"
	"github.com/pdiddy/nagolos/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	exitOK    = 0
	exitInput = 1
	exitError = 2
)

// app carries what the root command loads before any subcommand runs.
type app struct {
	v       *viper.Viper
	cfg     types.Config
	secrets secrets.Secrets
}

// configKeys maps viper keys to the root flags that override them.
var configKeys = map[string]string{
	"stress.backend":      "backend",
	"stress.dictionary":   "dictionary",
	"stress.symbol":       "symbol",
	"stress.on_ambiguity": "on-ambiguity",
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "nagolos <input>",
		Short: "Add stress marks to Ukrainian text in DOCX and PDF files",
		Long: `nagolos reads a word-processor document (.docx) or a PDF, marks the
stressed vowel of every Ukrainian word it knows, and writes the result as a
new .docx: one output paragraph per source paragraph or PDF page.

The output defaults to <input stem>_nagolos.docx next to the input.

The built-in dictionary is a small sample word list, enough to try the tool.
For real documents pass --dictionary with a fuller list or database
(see "nagolos dict import"), or use the container or http backend.`,
		Example: `  nagolos story.docx
  nagolos -o marked.docx --on-ambiguity first lecture.pdf
  nagolos dict import words.yaml --db words.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./nagolos.yaml or ~/.config/nagolos/nagolos.yaml)")
	pf.BoolP("verbose", "v", false, "enable verbose logging")

	f := rootCmd.Flags()
	f.StringP("output", "o", "", "output file path (default: <input>_nagolos.docx)")
	f.String("backend", string(types.BackendDictionary), "stress backend: dictionary, container, http, or none (the built-in dictionary is a small sample list)")
	f.String("dictionary", "", "dictionary file: .yaml word list or SQLite database (default: built-in list)")
	f.String("symbol", string(types.SymbolCombining), "stress mark: combining (U+0301) or acute (U+00B4)")
	f.String("on-ambiguity", string(types.AmbiguitySkip), "words with several readings: skip, first, or all")

	for key, name := range configKeys {
		if err := a.v.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}

	rootCmd.AddCommand(newDictCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// load reads configuration and secrets and sets up logging.
func (a *app) load(cmd *cobra.Command) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfgFile, _ := cmd.Flags().GetString("config")

	cfg, err := readConfig(a.v, cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(logging.Level(verbose), cfg.Log.Format, cmd.ErrOrStderr())
	if used := a.v.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "path", used)
	}

	s, err := secrets.Load(secrets.DefaultDir, logging.New("secrets"))
	if err != nil {
		return err
	}
	a.secrets = s
	return nil
}

// readConfig layers defaults, the config file, NAGOLOS_* environment
// variables and bound flags, then validates the result.
func readConfig(v *viper.Viper, cfgFile string) (types.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("nagolos")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "nagolos"))
		}
	}

	v.SetEnvPrefix("NAGOLOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := types.DefaultConfig()
	v.SetDefault("stress.backend", def.Stress.Backend)
	v.SetDefault("stress.symbol", def.Stress.Symbol)
	v.SetDefault("stress.on_ambiguity", def.Stress.OnAmbiguity)
	v.SetDefault("stress.dictionary", def.Stress.Dictionary)
	v.SetDefault("stress.image", def.Stress.Image)
	v.SetDefault("stress.url", def.Stress.URL)
	v.SetDefault("stress.timeout", def.Stress.Timeout)
	v.SetDefault("stress.max_retries", def.Stress.MaxRetries)
	v.SetDefault("log.format", def.Log.Format)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (a *app) runConvert(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	// Reject a bad input path before starting a container or dialing a
	// service.
	if err := source.CheckFile(input); err != nil {
		return err
	}
	if _, err := source.Classify(input); err != nil {
		return err
	}

	t, closeT, err := newTransformer(ctx, a.cfg.Stress, a.secrets)
	if err != nil {
		return err
	}
	defer closeT()

	p := pipeline.New(t, pipeline.WithLogger(logging.New("pipeline")))
	res, err := p.Process(ctx, input, output)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Destination)
	return nil
}

// exitCode maps an error to the process exit status: 1 for problems with
// the input path the user can fix, 2 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, source.ErrNotFound), errors.Is(err, source.ErrUnsupportedFormat):
		return exitInput
	default:
		return exitError
	}
}

// run executes the CLI with args and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logging.Init(slog.LevelInfo, "text", stderr)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		slog.Error(err.Error())
	}
	return exitCode(err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
