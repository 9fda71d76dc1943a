package llm

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// BuildPrompt assembles the full extraction prompt: the type-specific
// instructions, the indented template as a structural hint, and the document
// text bounded at maxChars. Truncation is silent here; the orchestrator logs
// it.
func BuildPrompt(instructions string, template map[string]any, text string, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		// Back up to a rune boundary so accented text never leaves an
		// invalid UTF-8 tail in the prompt.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\nStructure JSON attendue:\n")
	b.WriteString(mustIndentJSON(template))
	b.WriteString("\n\nTexte du document:\n")
	b.WriteString(text)
	b.WriteString("\n\nIMPORTANT: Retourne UNIQUEMENT le JSON valide, sans commentaires ni texte supplémentaire avant ou après.")
	return b.String()
}

func mustIndentJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
