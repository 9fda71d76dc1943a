package constants

import (
	"strings"
)

// DocumentType is the closed classification label driving schema and prompt
// selection.
type DocumentType string

const (
	TypeCV      DocumentType = "cv"
	TypeInvoice DocumentType = "invoice"
	TypeForm    DocumentType = "form"
	TypeGeneric DocumentType = "generic"

	// TypeAuto is a caller-side request value, never a classification result.
	TypeAuto DocumentType = "auto"
)

// TypeOrder is the fixed enumeration order used for deterministic tie-breaks
// during classification. TypeGeneric is last because it is the fallback, not a
// scored candidate.
var TypeOrder = []DocumentType{
	TypeCV,
	TypeInvoice,
	TypeForm,
}

func AsStringSlice() []string {
	result := make([]string, 0, len(TypeOrder)+1)
	for _, t := range TypeOrder {
		result = append(result, string(t))
	}
	return append(result, string(TypeGeneric))
}

// Canonicalize maps free-form user input to a DocumentType. The French labels
// from the original corpus are accepted as synonyms.
func Canonicalize(input string) (DocumentType, bool) {
	if input == "" {
		return TypeAuto, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]DocumentType{
		"resume":      TypeCV,
		"résumé":      TypeCV,
		"curriculum":  TypeCV,
		"facture":     TypeInvoice,
		"formulaire":  TypeForm,
		"general":     TypeGeneric,
		"généralités": TypeGeneric,
	}
	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	for _, t := range append(append([]DocumentType{}, TypeOrder...), TypeGeneric, TypeAuto) {
		if normalized == string(t) {
			return t, true
		}
	}
	return TypeAuto, false
}
