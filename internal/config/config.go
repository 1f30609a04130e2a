// Package config provides configuration types and defaults for strictpair.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/zjrosen/strictpair/internal/log"
	"github.com/zjrosen/strictpair/internal/pairing"
	"github.com/zjrosen/strictpair/internal/syntax"
)

// Config holds all configuration options for strictpair.
type Config struct {
	Pairing PairingConfig `mapstructure:"pairing"`
	Syntax  SyntaxConfig  `mapstructure:"syntax"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// PairingConfig configures the delimiter table and balance rules.
type PairingConfig struct {
	Pairs             []string `mapstructure:"pairs"`               // two-character opener/closer strings, e.g. "()"
	Symmetric         []string `mapstructure:"symmetric"`           // single characters that open and close, e.g. "\""
	OpaqueKinds       []string `mapstructure:"opaque_kinds"`        // syntax node kinds treated as free text
	CommentKinds      []string `mapstructure:"comment_kinds"`       // opaque kinds that stay open at their end
	Escape            string   `mapstructure:"escape"`              // prefix for a symmetric delimiter typed inside an opaque span
	AllowOpaqueDelete bool     `mapstructure:"allow_opaque_delete"` // delete unmatched delimiters inside strings/comments as text
}

// SyntaxConfig selects the syntax-tree source.
type SyntaxConfig struct {
	// Language overrides detection by file extension. Empty means detect.
	Language string `mapstructure:"language"`
}

// EditorConfig holds editor host options.
type EditorConfig struct {
	VimMode         bool `mapstructure:"vim_mode"`          // Start in normal mode with vim motions
	TabWidth        int  `mapstructure:"tab_width"`         // Display width of a tab
	ShowLineNumbers bool `mapstructure:"show_line_numbers"` // Render a line-number gutter
	WatchFile       bool `mapstructure:"watch_file"`        // Reload when the file changes on disk
}

// LogConfig configures the debug log.
type LogConfig struct {
	// File is the debug log path used with --debug. Default: debug.log
	File string `mapstructure:"file"`
}

// TracingConfig holds distributed tracing configuration for gesture spans.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the export backend: "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/strictpair/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of gestures traced, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/strictpair/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "strictpair", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Pairing: PairingConfig{
			Pairs:        slices.Clone(pairing.DefaultPairs),
			Symmetric:    slices.Clone(pairing.DefaultSymmetric),
			OpaqueKinds:  slices.Clone(pairing.DefaultOpaqueKinds),
			CommentKinds: slices.Clone(pairing.DefaultCommentKinds),
			Escape:       pairing.DefaultEscape,
		},
		Editor: EditorConfig{
			VimMode:         true,
			TabWidth:        4,
			ShowLineNumbers: true,
			WatchFile:       true,
		},
		Log: LogConfig{
			File: "debug.log",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks every section and joins the errors.
func Validate(cfg Config) error {
	return errors.Join(
		ValidatePairing(cfg.Pairing),
		ValidateSyntax(cfg.Syntax),
		ValidateEditor(cfg.Editor),
		ValidateTracing(cfg.Tracing),
	)
}

// ValidatePairing checks the delimiter table and escape prefix.
// Empty lists use defaults.
func ValidatePairing(p PairingConfig) error {
	if _, err := p.EngineOptions(); err != nil {
		return fmt.Errorf("pairing: %w", err)
	}
	return nil
}

// ValidateSyntax checks the language override.
func ValidateSyntax(s SyntaxConfig) error {
	if s.Language == "" {
		return nil
	}
	if !slices.Contains(syntax.Languages(), s.Language) {
		return fmt.Errorf("syntax.language must be one of %v, got %q", syntax.Languages(), s.Language)
	}
	return nil
}

// ValidateEditor checks editor options.
func ValidateEditor(e EditorConfig) error {
	if e.TabWidth < 1 || e.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", e.TabWidth)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// EngineOptions builds pairing engine options. Empty lists fall back to the
// engine defaults.
func (p PairingConfig) EngineOptions() (pairing.Options, error) {
	pairs, symmetric := p.Pairs, p.Symmetric
	if len(pairs) == 0 && len(symmetric) == 0 {
		pairs, symmetric = pairing.DefaultPairs, pairing.DefaultSymmetric
	}
	table, err := pairing.NewTable(pairs, symmetric)
	if err != nil {
		return pairing.Options{}, err
	}
	if p.Escape != "" && table.IsDelimiter(p.Escape) {
		return pairing.Options{}, fmt.Errorf("%w: escape %q is a delimiter", pairing.ErrInvalidTable, p.Escape)
	}

	opts := pairing.Options{
		Table:             table,
		Escape:            p.Escape,
		AllowOpaqueDelete: p.AllowOpaqueDelete,
	}
	if len(p.OpaqueKinds) > 0 {
		opts.OpaqueKinds = p.OpaqueKinds
	}
	if len(p.CommentKinds) > 0 {
		opts.CommentKinds = p.CommentKinds
	}
	return opts, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# strictpair configuration

# Delimiter pairing rules
pairing:
  # Opener/closer pairs, two characters each
  pairs: ["()", "[]", "{}"]
  # Characters that open and close with themselves
  symmetric: ['"']
  # Syntax node kinds whose contents are free text (strings, comments).
  # An entry matches the kind itself and dotted sub-kinds ("string" matches
  # "string.special"). End an entry with * to match a prefix ("comment*").
  opaque_kinds:
    - string
    - str_lit
    - regex_lit
    - comment
    - line_comment
    - block_comment
    - raw_string_literal
    - interpreted_string_literal
    - string_literal
    - char_literal
    - rune_literal
    - template_string
    - regex
    - raw_string
    - heredoc_body
  # Opaque kinds that run to the end of the line without a closer
  comment_kinds: [comment, line_comment]
  # Inserted before a quote typed inside a string
  escape: '\'
  # Let unmatched delimiters inside strings and comments be deleted as text
  allow_opaque_delete: false

# Syntax-tree source
syntax:
  # Override detection by file extension: sexp, go, javascript, python, rust, bash
  # language: sexp

# Editor settings
editor:
  vim_mode: true           # Start in normal mode with vim motions
  tab_width: 4             # Display width of a tab
  show_line_numbers: true  # Line-number gutter
  watch_file: true         # Reload when the file changes on disk

# Debug log written when running with --debug
log:
  file: debug.log

# Tracing of gesture planning (OpenTelemetry)
# tracing:
#   enabled: true
#   exporter: file         # none, file, stdout, otlp
#   file_path: ~/.config/strictpair/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
