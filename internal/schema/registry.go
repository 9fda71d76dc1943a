// Package schema owns the static per-type extraction templates, the
// natural-language instructions sent to the model, and the merge-target
// table. Everything here is read-only after construction.
package schema

import (
	"github.com/adour-labs/docstruct/constants"
)

// Target designates where one regex fact kind lands in a record: the
// top-level parent object and the field inside it.
type Target struct {
	Fact   string // "email" | "phone" | "linkedin" | "iban"
	Parent string
	Field  string
}

type Registry struct {
	templates    map[constants.DocumentType]map[string]any
	instructions map[constants.DocumentType]string
	targets      map[constants.DocumentType][]Target
}

// NewRegistry builds the default registry. Templates use placeholder values
// as structural hints for the model, not literal content.
func NewRegistry() *Registry {
	return &Registry{
		templates: map[constants.DocumentType]map[string]any{
			constants.TypeCV:      cvTemplate(),
			constants.TypeInvoice: invoiceTemplate(),
			constants.TypeForm:    formTemplate(),
			constants.TypeGeneric: genericTemplate(),
		},
		instructions: map[constants.DocumentType]string{
			constants.TypeCV: "Tu es un expert en extraction de données CV. " +
				"Extrais les informations de ce CV et retourne-les au format JSON structuré. " +
				"Corrige les erreurs OCR évidentes (caractères mal reconnus) et organise le contenu par sections.",
			constants.TypeInvoice: "Tu es un expert en traitement de factures. " +
				"Extrais les informations de cette facture au format JSON structuré : " +
				"émetteur, client, numéro et dates, lignes d'articles, totaux et conditions de paiement. " +
				"Corrige les chiffres mal reconnus par l'OCR.",
			constants.TypeForm: "Tu es un expert en traitement de formulaires. " +
				"Extrais tous les champs du formulaire avec leur label et leur valeur saisie, " +
				"organisés par section. N'inclus que ce qui est réellement présent dans le formulaire.",
			constants.TypeGeneric: "Tu es un expert en extraction de données structurées. " +
				"Extrais toutes les informations importantes de ce document au format JSON, " +
				"en conservant la hiérarchie des sections. Extrais tout le contenu, pas seulement un résumé.",
		},
		targets: map[constants.DocumentType][]Target{
			constants.TypeCV: {
				{Fact: "email", Parent: "profile", Field: "email"},
				{Fact: "phone", Parent: "profile", Field: "phone"},
				{Fact: "linkedin", Parent: "profile", Field: "linkedin"},
			},
			constants.TypeInvoice: {
				{Fact: "iban", Parent: "issuer", Field: "iban"},
				{Fact: "email", Parent: "issuer", Field: "email"},
				{Fact: "phone", Parent: "issuer", Field: "phone"},
			},
		},
	}
}

// SchemaFor returns the template for t, falling closed to generic for any
// unrecognized type. Never nil, never errors.
func (r *Registry) SchemaFor(t constants.DocumentType) map[string]any {
	if tpl, ok := r.templates[t]; ok {
		return tpl
	}
	return r.templates[constants.TypeGeneric]
}

// InstructionsFor returns the extraction instructions for t, falling closed
// to generic.
func (r *Registry) InstructionsFor(t constants.DocumentType) string {
	if s, ok := r.instructions[t]; ok {
		return s
	}
	return r.instructions[constants.TypeGeneric]
}

// MergeTargets returns the fact-to-field table for t. Types without
// enrichment (form, generic) return nil.
func (r *Registry) MergeTargets(t constants.DocumentType) []Target {
	return r.targets[t]
}

func cvTemplate() map[string]any {
	return map[string]any{
		"profile": map[string]any{
			"name":     "Full name",
			"title":    "Professional title",
			"phone":    "Phone number",
			"email":    "Email address",
			"github":   "GitHub profile URL",
			"linkedin": "LinkedIn profile URL",
			"summary":  "Short descriptive paragraph",
		},
		"languages": []any{
			map[string]any{"language": "French", "level": "Fluent"},
		},
		"education": []any{
			map[string]any{
				"period":      "2019-2022",
				"institution": "School name",
				"city":        "City",
				"degree":      "Degree name",
				"description": "Description of the curriculum",
				"skills":      []any{"skill"},
			},
		},
		"experience": []any{
			map[string]any{
				"period":       "May-June 2024",
				"company":      "Company name",
				"city":         "City",
				"position":     "Job title",
				"description":  "Role description",
				"missions":     []any{"mission"},
				"technologies": []any{"technology"},
			},
		},
		"skills": map[string]any{
			"languages":  []any{"programming language"},
			"frameworks": []any{"framework"},
			"databases":  []any{"database"},
			"tools":      []any{"tool"},
		},
		"soft_skills": []any{"Communication"},
		"interests":   []any{"Travel"},
	}
}

func invoiceTemplate() map[string]any {
	return map[string]any{
		"issuer": map[string]any{
			"name":       "Supplier name",
			"address":    "Full address",
			"phone":      "Phone number",
			"email":      "Email address",
			"siret":      "SIRET number",
			"vat_number": "VAT number",
			"iban":       "Bank account IBAN",
		},
		"customer": map[string]any{
			"name":    "Customer name",
			"address": "Full address",
			"phone":   "Phone number",
			"email":   "Email address",
		},
		"details": map[string]any{
			"invoice_number": "Invoice number",
			"issue_date":     "Issue date",
			"due_date":       "Due date",
			"reference":      "Order reference",
		},
		"line_items": []any{
			map[string]any{
				"description": "Item description",
				"quantity":    "Quantity",
				"unit_price":  "Unit price",
				"amount":      "Line total",
			},
		},
		"totals": map[string]any{
			"subtotal": "Subtotal before tax",
			"tax":      "Tax amount",
			"total":    "Total including tax",
		},
		"payment_terms": "Payment terms",
	}
}

func formTemplate() map[string]any {
	return map[string]any{
		"title": "Form title",
		"sections": []any{
			map[string]any{
				"title": "Section name",
				"fields": []any{
					map[string]any{
						"label": "Field label",
						"value": "Filled-in value",
						"kind":  "text|date|choice|checkbox|email|phone|address",
					},
				},
			},
		},
		"signature": map[string]any{
			"present":   false,
			"date":      "Signature date if present",
			"signatory": "Signatory name if present",
		},
	}
}

func genericTemplate() map[string]any {
	return map[string]any{
		"title": "Main document title",
		"sections": []any{
			map[string]any{
				"title":   "Section title",
				"content": "Section text content",
				"items":   []any{"list item"},
			},
		},
		"key_facts": map[string]any{
			"dates":   []any{"date mentioned"},
			"amounts": []any{"amount mentioned"},
			"names":   []any{"person or organization"},
		},
	}
}
