package replay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiff_Equal(t *testing.T) {
	assert.Empty(t, UnifiedDiff("a", "same\n", "same\n"))
}

func TestUnifiedDiff_SeparateHunks(t *testing.T) {
	var before []string
	for i := range 12 {
		before = append(before, "line"+string(rune('a'+i)))
	}
	after := append([]string(nil), before...)
	after[0] = "first"
	after[11] = "last"

	got := UnifiedDiff("f", strings.Join(before, "\n")+"\n", strings.Join(after, "\n")+"\n")

	assert.Equal(t, 2, strings.Count(got, "@@ -"), got)
	assert.Contains(t, got, "@@ -1,4 +1,4 @@\n-linea\n+first\n lineb\n")
	assert.Contains(t, got, "@@ -9,4 +9,4 @@\n linei\n")
	assert.True(t, strings.HasSuffix(got, "-linel\n+last\n"))
}

func TestUnifiedDiff_InsertIntoEmpty(t *testing.T) {
	got := UnifiedDiff("f", "", "()")
	assert.Equal(t, "--- a/f\n+++ b/f\n@@ -0,0 +1 @@\n+()\n", got)
}
