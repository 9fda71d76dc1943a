package merge

import (
	"testing"

	"github.com/adour-labs/docstruct/constants"
	"github.com/adour-labs/docstruct/internal/facts"
	"github.com/adour-labs/docstruct/internal/llm"
	"github.com/adour-labs/docstruct/internal/schema"
)

func newMerger() *Merger {
	return New(schema.NewRegistry(), nil)
}

func TestMergeFillsMissingFields(t *testing.T) {
	record := llm.Record{
		"profile": map[string]any{"name": "Jean Dupont"},
	}
	f := facts.AtomicFacts{
		Email:    "jean@exemple.fr",
		Phone:    "+33 6 12 34 56 78",
		LinkedIn: "linkedin.com/in/jdupont",
	}

	got := newMerger().Merge(record, f, constants.TypeCV)
	profile := got["profile"].(map[string]any)
	if profile["email"] != "jean@exemple.fr" {
		t.Errorf("email = %v", profile["email"])
	}
	if profile["phone"] != "+33 6 12 34 56 78" {
		t.Errorf("phone = %v", profile["phone"])
	}
	if profile["linkedin"] != "linkedin.com/in/jdupont" {
		t.Errorf("linkedin = %v", profile["linkedin"])
	}
	if profile["name"] != "Jean Dupont" {
		t.Errorf("untouched field changed: %v", profile["name"])
	}
}

func TestMergeNeverOverwritesPlausible(t *testing.T) {
	record := llm.Record{
		"issuer": map[string]any{
			"email": "facturation@acme.fr",
			"phone": "01 42 68 53 00",
			"iban":  "FR7610096000301234567890124",
		},
	}
	f := facts.AtomicFacts{
		Email: "autre@exemple.fr",
		Phone: "+33 6 99 99 99 99",
		IBAN:  "FR7630006000011234567890189",
	}

	got := newMerger().Merge(record, f, constants.TypeInvoice)
	issuer := got["issuer"].(map[string]any)
	if issuer["email"] != "facturation@acme.fr" {
		t.Errorf("plausible email overwritten: %v", issuer["email"])
	}
	if issuer["phone"] != "01 42 68 53 00" {
		t.Errorf("plausible phone overwritten: %v", issuer["phone"])
	}
	if issuer["iban"] != "FR7610096000301234567890124" {
		t.Errorf("plausible iban overwritten: %v", issuer["iban"])
	}
}

func TestMergeReplacesInvalidValues(t *testing.T) {
	record := llm.Record{
		"profile": map[string]any{
			"email": "jean point dupont", // no @: structurally invalid
			"phone": "non renseigné",     // no digits
		},
	}
	f := facts.AtomicFacts{Email: "jean@exemple.fr", Phone: "0612345678"}

	got := newMerger().Merge(record, f, constants.TypeCV)
	profile := got["profile"].(map[string]any)
	if profile["email"] != "jean@exemple.fr" {
		t.Errorf("invalid email kept: %v", profile["email"])
	}
	if profile["phone"] != "0612345678" {
		t.Errorf("digit-free phone kept: %v", profile["phone"])
	}
}

func TestMergeNeverCreatesParents(t *testing.T) {
	record := llm.Record{"languages": []any{}}
	f := facts.AtomicFacts{Email: "jean@exemple.fr"}

	got := newMerger().Merge(record, f, constants.TypeCV)
	if _, ok := got["profile"]; ok {
		t.Error("merge invented a missing parent object")
	}
	if len(got) != 1 {
		t.Errorf("top-level keys changed: %v", got)
	}
}

func TestMergeSentinelPassThrough(t *testing.T) {
	record := llm.ErrorRecord("service unreachable")
	f := facts.AtomicFacts{Email: "jean@exemple.fr"}

	got := newMerger().Merge(record, f, constants.TypeCV)
	if !llm.IsErrorRecord(got) {
		t.Fatal("sentinel lost")
	}
	if len(got) != 1 {
		t.Errorf("sentinel modified: %v", got)
	}
}

func TestMergeTypesWithoutTargets(t *testing.T) {
	record := llm.Record{"title": "Formulaire"}
	f := facts.AtomicFacts{Email: "jean@exemple.fr", IBAN: "FR7630006000011234567890189"}

	for _, dt := range []constants.DocumentType{constants.TypeForm, constants.TypeGeneric} {
		got := newMerger().Merge(record, f, dt)
		if len(got) != 1 || got["title"] != "Formulaire" {
			t.Errorf("%s: record changed: %v", dt, got)
		}
	}
}
