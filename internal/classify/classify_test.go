package classify

import (
	"strings"
	"testing"

	"github.com/adour-labs/docstruct/constants"
)

const cvText = `Jean Dupont
Développeur Full Stack

Expérience professionnelle
2020-2024 : Développeur chez Acme

Formation
Diplôme d'ingénieur en informatique

Compétences : Go, Python, SQL
Langues : français, anglais
Loisirs : photographie`

const invoiceText = `FACTURE n° 2024-117
Date d'émission : 12/03/2024
Client : SARL Exemple

Prestation de conseil ... 1 200,00 €
TVA 20% ... 240,00 €
Montant total TTC : 1 440,00 €
Échéance : 30 jours`

const formText = `Formulaire de demande
Nom: ................
Prénom: ................
Date de naissance: ....
Signature:`

func TestClassifyKnownTypes(t *testing.T) {
	c := New(DefaultConfig(), nil)

	tests := []struct {
		name string
		text string
		want constants.DocumentType
	}{
		{"cv", cvText, constants.TypeCV},
		{"invoice", invoiceText, constants.TypeInvoice},
		{"form", formText, constants.TypeForm},
		{"empty", "", constants.TypeGeneric},
		{"prose", "Il était une fois un petit village au bord de la mer.", constants.TypeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(DefaultConfig(), nil)
	first := c.Classify(invoiceText)
	for i := 0; i < 50; i++ {
		if got := c.Classify(invoiceText); got != first {
			t.Fatalf("run %d: got %q, first run gave %q", i, got, first)
		}
	}
}

func TestClassifyTokenCap(t *testing.T) {
	c := New(DefaultConfig(), nil)
	// One keyword repeated many times must not outweigh a genuine invoice.
	spam := strings.Repeat("formation ", 200)
	if got := c.Classify(spam + invoiceText); got != constants.TypeInvoice {
		t.Errorf("Classify(spam+invoice) = %q, want invoice despite keyword spam", got)
	}
}

func TestClassifyCurrencyTotalsBonus(t *testing.T) {
	c := New(DefaultConfig(), nil)
	// Only one raw keyword hit; the currency+totals bonus must lift the score
	// over the threshold.
	text := "Montant total : 99,00 €"
	if got := c.Classify(text); got != constants.TypeInvoice {
		t.Errorf("Classify() = %q, want invoice via bonus rule", got)
	}
}

func TestClassifyNetworkDomainBonus(t *testing.T) {
	c := New(DefaultConfig(), nil)
	text := "Profil : linkedin.com/in/jdupont\nFormation récente"
	if got := c.Classify(text); got != constants.TypeCV {
		t.Errorf("Classify() = %q, want cv via network-domain bonus", got)
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	c := New(Config{
		Keywords: map[constants.DocumentType][]string{
			constants.TypeCV: {"licorne"},
		},
		MinScore: 2,
	}, nil)
	if got := c.Classify("une licorne"); got != constants.TypeGeneric {
		t.Errorf("Classify() = %q, want generic for score 1 < threshold 2", got)
	}
}
