// Package classify assigns a document type to extracted text with a weighted
// keyword heuristic. It is deliberately cheap and deterministic; documents it
// cannot place confidently fall back to the generic type.
package classify

import (
	"log/slog"
	"strings"

	"github.com/adour-labs/docstruct/constants"
)

type Config struct {
	// Keywords holds the lowercase token tables scored per candidate type.
	Keywords map[constants.DocumentType][]string

	TokenCap int // per-token occurrence cap; default 5
	MinScore int // winning score below this yields generic; default 2

	// InvoiceTotalBonus is added to the invoice score when a currency symbol
	// and a totals keyword appear together; default 3.
	InvoiceTotalBonus int
	// NetworkDomainBonus is added to the cv score when a professional-network
	// domain appears; default 2.
	NetworkDomainBonus int
}

// DefaultConfig returns the tables tuned on the mixed French/English corpus.
func DefaultConfig() Config {
	return Config{
		Keywords: map[constants.DocumentType][]string{
			constants.TypeCV: {
				"curriculum", "vitae", "développeur", "expérience professionnelle",
				"formation", "éducation", "compétences", "langues", "loisirs", "diplôme",
			},
			constants.TypeInvoice: {
				"facture", "invoice", "numéro", "date d'émission", "montant total",
				"tva", " ht", "ttc", "client", "fournisseur", "échéance",
			},
			constants.TypeForm: {
				"formulaire", "nom:", "prénom:", "date de naissance",
				"case à cocher", "signature", "cadre réservé",
			},
		},
		TokenCap:           5,
		MinScore:           2,
		InvoiceTotalBonus:  3,
		NetworkDomainBonus: 2,
	}
}

var (
	currencyMarkers = []string{"€", "$", "£", "eur", "dhs"}
	totalsMarkers   = []string{"total", "ttc", "montant"}
	networkDomains  = []string{"linkedin.com"}
)

type Classifier struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Keywords == nil {
		cfg = DefaultConfig()
	}
	if cfg.TokenCap <= 0 {
		cfg.TokenCap = 5
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = 2
	}
	if cfg.InvoiceTotalBonus <= 0 {
		cfg.InvoiceTotalBonus = 3
	}
	if cfg.NetworkDomainBonus <= 0 {
		cfg.NetworkDomainBonus = 2
	}
	return &Classifier{cfg: cfg, logger: logger}
}

// Classify scores text against every keyword table and returns the winning
// type. Ties resolve in the fixed order of constants.TypeOrder; a winning
// score below MinScore returns TypeGeneric.
func (c *Classifier) Classify(text string) constants.DocumentType {
	textL := strings.ToLower(text)

	scores := make(map[constants.DocumentType]int, len(c.cfg.Keywords))
	for t, tokens := range c.cfg.Keywords {
		score := 0
		for _, tok := range tokens {
			n := strings.Count(textL, tok)
			if n > c.cfg.TokenCap {
				n = c.cfg.TokenCap
			}
			score += n
		}
		scores[t] = score
	}

	if containsAny(textL, currencyMarkers) && containsAny(textL, totalsMarkers) {
		scores[constants.TypeInvoice] += c.cfg.InvoiceTotalBonus
	}
	if containsAny(textL, networkDomains) {
		scores[constants.TypeCV] += c.cfg.NetworkDomainBonus
	}

	best := constants.TypeGeneric
	bestScore := 0
	for _, t := range constants.TypeOrder {
		if scores[t] > bestScore {
			best = t
			bestScore = scores[t]
		}
	}

	if bestScore < c.cfg.MinScore {
		c.logger.Debug("classify.below_threshold", "best", string(best), "score", bestScore)
		return constants.TypeGeneric
	}

	c.logger.Debug("classify.result", "type", string(best), "score", bestScore)
	return best
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
