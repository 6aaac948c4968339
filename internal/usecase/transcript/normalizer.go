package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// UnknownSpeaker is the bucket for statements whose speaker label cleans down
// to nothing. Keeping a named bucket preserves the invariant that every
// statement attributes to exactly one participant.
const UnknownSpeaker = "unknown"

var (
	squareBracketPattern = regexp.MustCompile(`\[[^\[\]]*\]`)
	roundBracketPattern  = regexp.MustCompile(`\([^()]*\)`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// Normalizer canonicalizes raw speaker labels: bracketed annotations are
// stripped, whitespace collapsed, and the cleaned label looked up in an alias
// table (case-sensitive, exact match). Normalize is idempotent.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer creates a Normalizer with the given alias table. A nil map is
// valid and disables alias resolution.
func NewNormalizer(aliases map[string]string) *Normalizer {
	return &Normalizer{aliases: aliases}
}

// LoadAliases reads an alias table from a JSON file shaped
// {"alias": "canonical name", ...}. A missing path returns an empty table so
// deployments without an alias file keep working.
func LoadAliases(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}
	aliases := map[string]string{}
	if err := json.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}
	return aliases, nil
}

// Normalize canonicalizes one raw speaker label. Empty results fall back to
// the UnknownSpeaker bucket.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := stripBrackets(raw)
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return UnknownSpeaker
	}
	if canonical, ok := n.aliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// stripBrackets removes every balanced [...] and (...) segment, innermost
// first so nested groups collapse completely. Unmatched openers are left in
// place along with the text after them.
func stripBrackets(s string) string {
	for {
		next := squareBracketPattern.ReplaceAllString(s, "")
		next = roundBracketPattern.ReplaceAllString(next, "")
		if next == s {
			return s
		}
		s = next
	}
}
