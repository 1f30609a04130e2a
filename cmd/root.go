package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/strictpair/internal/config"
	"github.com/zjrosen/strictpair/internal/editor"
	"github.com/zjrosen/strictpair/internal/log"
	"github.com/zjrosen/strictpair/internal/pairing"
	"github.com/zjrosen/strictpair/internal/syntax"
	"github.com/zjrosen/strictpair/internal/tracing"
	"github.com/zjrosen/strictpair/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// typed text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".strictpair/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "strictpair [file]",
	Short: "A terminal editor that keeps delimiters balanced",
	Long: `strictpair is a modal terminal editor that never lets brackets and
quotes fall out of balance. Typing an opener inserts its pair, typing a
closer steps over the existing one, and deleting a delimiter deletes its
partner too. Strings and comments are free text.

Delimiters are matched against a syntax tree: a built-in s-expression
reader for Lisp-family files, tree-sitter for go, javascript, python, rust
and bash.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .strictpair/config.yaml, then ~/.config/strictpair/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by STRICTPAIR_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (overrides log.file)")
	rootCmd.PersistentFlags().String("lang", "",
		fmt.Sprintf("syntax language, one of %s (default: from file extension)", strings.Join(syntax.Languages(), ", ")))

	// Bind flags to viper
	_ = viper.BindPFlag("syntax.language", rootCmd.PersistentFlags().Lookup("lang"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("pairing.pairs", defaults.Pairing.Pairs)
	viper.SetDefault("pairing.symmetric", defaults.Pairing.Symmetric)
	viper.SetDefault("pairing.opaque_kinds", defaults.Pairing.OpaqueKinds)
	viper.SetDefault("pairing.comment_kinds", defaults.Pairing.CommentKinds)
	viper.SetDefault("pairing.escape", defaults.Pairing.Escape)
	viper.SetDefault("pairing.allow_opaque_delete", defaults.Pairing.AllowOpaqueDelete)
	viper.SetDefault("editor.vim_mode", defaults.Editor.VimMode)
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("editor.show_line_numbers", defaults.Editor.ShowLineNumbers)
	viper.SetDefault("editor.watch_file", defaults.Editor.WatchFile)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	// STRICTPAIR_EDITOR_TAB_WIDTH overrides editor.tab_width, and so on.
	viper.SetEnvPrefix("strictpair")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .strictpair/config.yaml (current directory)
		// 2. ~/.config/strictpair/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "strictpair"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	cfgErr = nil
	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine; the defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cfgErr = fmt.Errorf("reading config: %w", err)
		}
	}

	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil && cfgErr == nil {
		cfgErr = fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

// loadConfig returns the validated configuration.
func loadConfig() (config.Config, error) {
	if cfgErr != nil {
		return cfg, cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// startDebugLog opens the debug log when --debug or STRICTPAIR_DEBUG is set.
// The returned cleanup is always safe to call.
func startDebugLog(prefix string) (func(), error) {
	if os.Getenv("STRICTPAIR_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := logFile
	if logPath == "" {
		logPath = cfg.Log.File
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "strictpair starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// startTracing creates the tracing provider from cfg.Tracing.
func startTracing() (*tracing.Provider, error) {
	t := cfg.Tracing
	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	if provider.Enabled() {
		log.Debug(log.CatConfig, "tracing enabled", "exporter", t.Exporter)
	}
	return provider, nil
}

func shutdownTracing(provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatConfig, "tracing shutdown failed", err)
	}
}

// newEngine builds the pairing engine from the pairing section.
func newEngine(c config.Config, provider *tracing.Provider) (*pairing.Engine, error) {
	opts, err := c.Pairing.EngineOptions()
	if err != nil {
		return nil, fmt.Errorf("pairing: %w", err)
	}
	opts.Tracer = provider.Tracer()
	return pairing.New(opts)
}

// parserFor picks the syntax parser for path. A scratch buffer uses the
// s-expression reader.
func parserFor(path, language string) (syntax.Parser, error) {
	if path == "" && language == "" {
		return syntax.NewSexpParser(), nil
	}
	return syntax.ForFile(path, language)
}

func runEditor(_ *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	cleanup, err := startDebugLog("strictpair")
	if err != nil {
		return err
	}
	defer cleanup()

	provider, err := startTracing()
	if err != nil {
		return err
	}
	defer shutdownTracing(provider)

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	parser, err := parserFor(path, c.Syntax.Language)
	if err != nil {
		if c.Syntax.Language != "" || !errors.Is(err, syntax.ErrNoParser) {
			return err
		}
		// Without a tree, typing still pairs but delimiter deletes are blocked.
		log.Warn(log.CatSyntax, "no parser for file", "path", path)
		parser = nil
	}

	engine, err := newEngine(c, provider)
	if err != nil {
		return err
	}

	doc := editor.NewDocument("", "", parser)
	if path != "" {
		doc, err = editor.LoadDocument(path, parser)
		if err != nil {
			return err
		}
	}

	opts := editor.Options{
		Engine:          engine,
		VimMode:         c.Editor.VimMode,
		TabWidth:        c.Editor.TabWidth,
		ShowLineNumbers: c.Editor.ShowLineNumbers,
	}
	if path != "" && c.Editor.WatchFile {
		w, err := watcher.New(watcher.DefaultConfig(path))
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		changes, err := w.Start()
		if err != nil {
			// Keep editing without reloads.
			log.Warn(log.CatWatcher, "watch disabled", "error", err)
		} else {
			opts.Changes = changes
		}
		defer func() { _ = w.Stop() }()
	}

	p := tea.NewProgram(editor.New(doc, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
