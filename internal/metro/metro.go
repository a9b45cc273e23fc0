// Package metro normalizes metro-area names from licence dumps. Station
// locations arrive with inconsistent casing, accents, suburb names, and the
// occasional misspelling; this package folds them onto canonical metro names
// using an embedded alias table.
package metro

import (
	_ "embed"
	"sort"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// foldTransform strips combining marks after NFD decomposition, so accented
// characters compare equal to their ASCII forms.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Table maps normalized names (canonical and alias alike) to canonical
// metro names.
type Table struct {
	byAlias   map[string]string
	canonical []string
}

// Load parses the embedded alias table.
func Load() (*Table, error) {
	return parse(aliasesYAML)
}

func parse(raw []byte) (*Table, error) {
	var entries map[string][]string
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, eris.Wrap(err, "metro: parse alias table")
	}

	t := &Table{byAlias: make(map[string]string)}
	for canonical, aliases := range entries {
		t.canonical = append(t.canonical, canonical)
		t.byAlias[Normalize(canonical)] = canonical
		for _, a := range aliases {
			t.byAlias[Normalize(a)] = canonical
		}
	}
	sort.Strings(t.canonical)
	return t, nil
}

// Normalize uppercases s, strips accents, drops parenthesized qualifiers,
// and collapses whitespace runs to single spaces.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	depth := 0
	lastSpace := true
	for _, r := range folded {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth > 0:
			// inside a qualifier
		case unicode.IsSpace(r) || r == ',':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(unicode.ToUpper(r))
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}

// Canonical resolves a raw location string to its canonical metro name.
// It first tries the whole normalized string, then each comma- or
// parenthesis-free token prefix, so "KANATA (ON)" and "OTTAWA, ONTARIO"
// both resolve.
func (t *Table) Canonical(raw string) (string, bool) {
	n := Normalize(raw)
	if n == "" {
		return "", false
	}
	if c, ok := t.byAlias[n]; ok {
		return c, true
	}

	// Fall back to the leading words: locations often append street or
	// province detail after the place name.
	words := strings.Fields(n)
	for end := len(words) - 1; end > 0; end-- {
		if c, ok := t.byAlias[strings.Join(words[:end], " ")]; ok {
			return c, true
		}
	}
	return "", false
}

// Metros returns the canonical metro names in sorted order.
func (t *Table) Metros() []string {
	out := make([]string, len(t.canonical))
	copy(out, t.canonical)
	return out
}

// Aliases returns the normalized aliases that resolve to the given
// canonical metro, sorted.
func (t *Table) Aliases(canonical string) []string {
	var out []string
	for alias, c := range t.byAlias {
		if c == canonical && alias != Normalize(canonical) {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
