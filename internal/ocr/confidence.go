package ocr

import (
	"regexp"
	"strings"
)

var (
	reDate  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	reMail  = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.\w{2,}\b`)
	reMoney = regexp.MustCompile(`\b\d{1,3}([ ,]\d{3})*([.,]\d{2})\b|[$£€]`)
)

// HeuristicConfidence scores decoded text in 0..1 from cheap structural
// signals (dates, contact details, amounts, sheer volume). It is advisory
// only; the pipeline uses it to flag records for review, never to reject.
func HeuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reDate.MatchString(txtL) {
		score += 0.2
	}
	if reMail.MatchString(txtL) {
		score += 0.15
	}
	if reMoney.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 200 {
		score += 0.15
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
