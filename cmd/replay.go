package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strictpair/internal/editor"
	"github.com/zjrosen/strictpair/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Apply a key script to a file and print the diff",
	Long: `Feed a key script to the editor without a terminal and print a unified
diff of the result. The file on disk is never modified.

Keys are typed literally; special keys are written as <name>:
  <backspace> <delete> <esc> <enter> <tab> <space>
  <left> <right> <up> <down> <home> <end>
  <alt+backspace> <alt+delete>   (edit without delimiter balancing)
  <lt>                           (a literal "<")

Gestures that were blocked are listed on stderr.

Example:
  strictpair replay --keys 'x' core.clj
  strictpair replay --keys 'A<backspace>(inc x)<esc>' --lang sexp notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var replayKeys string

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayKeys, "keys", "k", "", "key script to replay")
	_ = replayCmd.MarkFlagRequired("keys")
}

func runReplay(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	cleanup, err := startDebugLog("strictpair-replay")
	if err != nil {
		return err
	}
	defer cleanup()

	provider, err := startTracing()
	if err != nil {
		return err
	}
	defer shutdownTracing(provider)

	keys, err := replay.ParseKeys(replayKeys)
	if err != nil {
		return fmt.Errorf("parsing --keys: %w", err)
	}

	path := args[0]
	parser, err := parserFor(path, c.Syntax.Language)
	if err != nil {
		return fmt.Errorf("%w (use --lang)", err)
	}
	engine, err := newEngine(c, provider)
	if err != nil {
		return err
	}
	doc, err := editor.LoadDocument(path, parser)
	if err != nil {
		return err
	}

	report := replay.Run(editor.New(doc, editor.Options{
		Engine:   engine,
		VimMode:  c.Editor.VimMode,
		TabWidth: c.Editor.TabWidth,
	}), keys)

	for _, w := range report.Warnings {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), report.Diff())
	return nil
}
