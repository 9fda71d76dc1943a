package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RecoverJSON parses a JSON object out of model output that may be wrapped in
// code fences or explanatory prose. Two passes: strip fence markers, then
// slice from the first '{' to the last '}' and parse that substring.
func RecoverJSON(s string) (Record, error) {
	s = stripFences(s)

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response (%d bytes)", len(s))
	}

	var r Record
	if err := json.Unmarshal([]byte(s[start:end+1]), &r); err != nil {
		return nil, fmt.Errorf("parse recovered JSON: %w", err)
	}
	return r, nil
}

// stripFences removes leading/trailing markdown code-fence lines
// ("```json" / "```"), leaving inner content untouched.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
