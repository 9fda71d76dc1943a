// Package facts pulls known-format atomic values straight out of raw text
// with regular expressions. It runs in parallel with the LLM analysis and
// supplies the merge stage with ground truth the model may have missed.
package facts

import "regexp"

// AtomicFacts holds at most one value per fact kind, the first match in
// document order. Empty string means absent.
type AtomicFacts struct {
	Email    string
	Phone    string
	LinkedIn string
	IBAN     string
}

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// French (+33) and Moroccan (+212) international prefixes, or a national
	// leading 0, followed by a 9-digit grouped number.
	rePhone    = regexp.MustCompile(`(?:\+33|\+212|0)\s?[1-9](?:[ .\-]?\d{2}){4}`)
	reLinkedIn = regexp.MustCompile(`linkedin\.com/in/[\w\-]+`)
	reIBAN     = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`)
)

// Extract scans text for every fact kind. Pure; absence of a match leaves the
// field empty, never errors.
func Extract(text string) AtomicFacts {
	return AtomicFacts{
		Email:    reEmail.FindString(text),
		Phone:    rePhone.FindString(text),
		LinkedIn: reLinkedIn.FindString(text),
		IBAN:     reIBAN.FindString(text),
	}
}
