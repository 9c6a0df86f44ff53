package employee

import (
	"strings"

	json "github.com/goccy/go-json"
)

// EncodeSkills renders skills as a JSON array, never null.
func EncodeSkills(skills []string) ([]byte, error) {
	return json.Marshal(NormalizeSkills(skills))
}

// DecodeSkills parses a stored JSON array. Absent or malformed input yields
// an empty list.
func DecodeSkills(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// NormalizeSkills trims entries and drops blanks, keeping order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
