package syntax

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// describe renders every node as "kind (r:c)-(r:c)" in pre-order.
func describe(t *Tree) []string {
	var out []string
	t.Walk(func(n Node) bool {
		start, end := n.Range()
		out = append(out, fmt.Sprintf("%s %s-%s", n.Kind(), start, end))
		return true
	})
	return out
}

func parseSexp(t *testing.T, text string) *Tree {
	t.Helper()
	tree, err := NewSexpParser().Parse(context.Background(), strings.Split(text, "\n"))
	require.NoError(t, err)
	return tree
}

func TestSexpParser_List(t *testing.T) {
	tree := parseSexp(t, "(foo bar)")

	assert.Equal(t, []string{
		"source (0:0)-(0:9)",
		"list_lit (0:0)-(0:9)",
		"sym_lit (0:1)-(0:4)",
		"sym_lit (0:5)-(0:8)",
	}, describe(tree))
	assert.False(t, tree.HasError())
}

func TestSexpParser_UnclosedListBecomesError(t *testing.T) {
	tree := parseSexp(t, "(foo")

	assert.Equal(t, []string{
		"source (0:0)-(0:4)",
		"ERROR (0:0)-(0:4)",
		"sym_lit (0:1)-(0:4)",
	}, describe(tree))
	assert.True(t, tree.HasError())
}

func TestSexpParser_StrayCloser(t *testing.T) {
	tree := parseSexp(t, "a)")

	assert.Equal(t, []string{
		"source (0:0)-(0:2)",
		"sym_lit (0:0)-(0:1)",
		"ERROR (0:1)-(0:2)",
	}, describe(tree))
}

func TestSexpParser_MismatchedCloser(t *testing.T) {
	tree := parseSexp(t, "(a]")

	assert.Equal(t, []string{
		"source (0:0)-(0:3)",
		"ERROR (0:0)-(0:3)",
		"sym_lit (0:1)-(0:2)",
		"ERROR (0:2)-(0:3)",
	}, describe(tree))
}

func TestSexpParser_StringsAndComments(t *testing.T) {
	tree := parseSexp(t, `"a(b" ; (x`)

	assert.Equal(t, []string{
		"source (0:0)-(0:10)",
		"str_lit (0:0)-(0:5)",
		"comment (0:6)-(0:10)",
	}, describe(tree))
}

func TestSexpParser_EscapedQuote(t *testing.T) {
	tree := parseSexp(t, `"a\"b"`)

	assert.Equal(t, []string{
		"source (0:0)-(0:6)",
		"str_lit (0:0)-(0:6)",
	}, describe(tree))
}

func TestSexpParser_UnterminatedString(t *testing.T) {
	tree := parseSexp(t, `"abc`)

	assert.Equal(t, []string{
		"source (0:0)-(0:4)",
		"ERROR (0:0)-(0:4)",
	}, describe(tree))
}

func TestSexpParser_MultiLine(t *testing.T) {
	tree := parseSexp(t, "(\"a\nb\")")

	assert.Equal(t, []string{
		"source (0:0)-(1:3)",
		"list_lit (0:0)-(1:3)",
		"str_lit (0:1)-(1:2)",
	}, describe(tree))
}

func TestSexpParser_DispatchForms(t *testing.T) {
	tree := parseSexp(t, `#{1} #"r" #(x)`)

	assert.Equal(t, []string{
		"source (0:0)-(0:14)",
		"dispatch (0:0)-(0:1)",
		"set_lit (0:1)-(0:4)",
		"num_lit (0:2)-(0:3)",
		"dispatch (0:5)-(0:6)",
		"regex_lit (0:6)-(0:9)",
		"dispatch (0:10)-(0:11)",
		"anon_fn_lit (0:11)-(0:14)",
		"sym_lit (0:12)-(0:13)",
	}, describe(tree))
}

func TestSexpParser_CharLiterals(t *testing.T) {
	tree := parseSexp(t, `\( \newline`)

	assert.Equal(t, []string{
		"source (0:0)-(0:11)",
		"char_lit (0:0)-(0:2)",
		"char_lit (0:3)-(0:11)",
	}, describe(tree))
}

func TestSexpParser_TokenKinds(t *testing.T) {
	tree := parseSexp(t, "[:k -1 -x 42]")

	assert.Equal(t, []string{
		"source (0:0)-(0:13)",
		"vec_lit (0:0)-(0:13)",
		"kwd_lit (0:1)-(0:3)",
		"num_lit (0:4)-(0:6)",
		"sym_lit (0:7)-(0:9)",
		"num_lit (0:10)-(0:12)",
	}, describe(tree))
}

func TestSexpParser_GraphemeColumns(t *testing.T) {
	tree := parseSexp(t, `("😀")`)

	assert.Equal(t, []string{
		"source (0:0)-(0:5)",
		"list_lit (0:0)-(0:5)",
		"str_lit (0:1)-(0:4)",
	}, describe(tree))
}

func TestSexpParser_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSexpParser().Parse(ctx, []string{"()"})
	require.ErrorIs(t, err, ErrParse)
}
