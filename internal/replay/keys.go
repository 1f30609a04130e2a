package replay

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"
)

// ErrUnknownKey is returned for a <name> token that names no key.
var ErrUnknownKey = errors.New("unknown key")

var namedKeys = map[string]tea.KeyMsg{
	"backspace":     {Type: tea.KeyBackspace},
	"bs":            {Type: tea.KeyBackspace},
	"delete":        {Type: tea.KeyDelete},
	"del":           {Type: tea.KeyDelete},
	"esc":           {Type: tea.KeyEscape},
	"escape":        {Type: tea.KeyEscape},
	"enter":         {Type: tea.KeyEnter},
	"cr":            {Type: tea.KeyEnter},
	"tab":           {Type: tea.KeyTab},
	"space":         {Type: tea.KeySpace, Runes: []rune{' '}},
	"left":          {Type: tea.KeyLeft},
	"right":         {Type: tea.KeyRight},
	"up":            {Type: tea.KeyUp},
	"down":          {Type: tea.KeyDown},
	"home":          {Type: tea.KeyHome},
	"end":           {Type: tea.KeyEnd},
	"alt+backspace": {Type: tea.KeyBackspace, Alt: true},
	"alt+delete":    {Type: tea.KeyDelete, Alt: true},
	"ctrl+s":        {Type: tea.KeyCtrlS},
	"ctrl+c":        {Type: tea.KeyCtrlC},
	"lt":            {Type: tea.KeyRunes, Runes: []rune{'<'}},
}

// ParseKeys turns a key script into key messages. Special keys are written
// as <name>, e.g. <backspace>, <esc>, <alt+delete>; <lt> types a literal
// "<". Every other character is typed as is, with newline as <enter>.
func ParseKeys(script string) ([]tea.KeyMsg, error) {
	var keys []tea.KeyMsg
	rest := script
	for rest != "" {
		if strings.HasPrefix(rest, "<") {
			end := strings.IndexByte(rest, '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated %q", ErrUnknownKey, rest)
			}
			name := strings.ToLower(rest[1:end])
			k, ok := namedKeys[name]
			if !ok {
				return nil, fmt.Errorf("%w: <%s>", ErrUnknownKey, name)
			}
			keys = append(keys, k)
			rest = rest[end+1:]
			continue
		}

		ch, next, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		keys = append(keys, charKey(ch))
		rest = next
	}
	return keys, nil
}

func charKey(ch string) tea.KeyMsg {
	switch ch {
	case "\n", "\r\n":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "\t":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(ch)}
	}
}
