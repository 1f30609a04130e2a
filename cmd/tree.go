package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/strictpair/internal/buffer"
	"github.com/zjrosen/strictpair/internal/pairing"
	"github.com/zjrosen/strictpair/internal/syntax"
	"github.com/zjrosen/strictpair/internal/tracing"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the syntax tree of a file",
	Long: `Print every node of the file's syntax tree with its kind and range.
Nodes whose first and last characters form a delimiter pair are marked with
"pair". Nodes whose kind is opaque (free text, such as strings and comments)
under the current configuration are marked with "opaque". Use it to find the
kinds to list in pairing.opaque_kinds for a grammar.`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

var treeOpaqueOnly bool

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVar(&treeOpaqueOnly, "opaque", false, "only print opaque nodes")
}

func runTree(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	parser, err := parserFor(path, c.Syntax.Language)
	if err != nil {
		return fmt.Errorf("%w (use --lang)", err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	buf := buffer.New(string(data))

	tree, err := parser.Parse(context.Background(), buf.Lines())
	if err != nil {
		return err
	}

	// Inspection records no spans.
	provider, err := tracing.NewProvider(tracing.Config{})
	if err != nil {
		return err
	}
	engine, err := newEngine(c, provider)
	if err != nil {
		return err
	}
	host := &treeHost{Buffer: buf, tree: tree}

	out := cmd.OutOrStdout()
	tree.Walk(func(n syntax.Node) bool {
		isOpaque := engine.OpaqueKind(n.Kind())
		if treeOpaqueOnly && !isOpaque {
			return true
		}
		start, end := n.Range()
		line := fmt.Sprintf("%s%s %d:%d-%d:%d", strings.Repeat("  ", n.Depth()), n.Kind(),
			start.Row, start.Col, end.Row, end.Col)
		if isPair(engine, host, n) {
			line += " pair"
		}
		if isOpaque {
			line += " opaque"
		}
		_, _ = fmt.Fprintln(out, line)
		return true
	})
	if tree.HasError() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning: tree contains syntax errors")
	}
	return nil
}

// treeHost serves one parsed tree to the engine's read-only lookups.
type treeHost struct {
	*buffer.Buffer
	tree *syntax.Tree
}

func (h *treeHost) SyntaxTree() (*syntax.Tree, error) {
	return h.tree, nil
}

// isPair reports whether n's first and last characters are the pair the
// engine resolves from its opening delimiter.
func isPair(engine *pairing.Engine, host pairing.Host, n syntax.Node) bool {
	start, end := n.Range()
	if end.Col == 0 {
		return false
	}
	ch, ok := host.CharAt(start)
	if !ok || !engine.Table().IsDelimiter(ch) {
		return false
	}
	pair, ok := engine.ResolvePair(host, start)
	return ok && pair.Open == start && pair.Close == buffer.Pos(end.Row, end.Col-1)
}
