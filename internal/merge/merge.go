// Package merge reconciles the model's structured record with regex-extracted
// facts. The policy is conservative: facts only fill holes, they never win an
// argument with a plausible model value.
package merge

import (
	"log/slog"
	"strings"

	"github.com/adour-labs/docstruct/constants"
	"github.com/adour-labs/docstruct/internal/facts"
	"github.com/adour-labs/docstruct/internal/llm"
	"github.com/adour-labs/docstruct/internal/schema"
)

type Merger struct {
	reg    *schema.Registry
	logger *slog.Logger
}

func New(reg *schema.Registry, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{reg: reg, logger: logger}
}

// Merge injects facts into record at the registry's target fields for t, in
// place, and returns record. A fact lands only when its target field is
// absent, empty, or structurally invalid; missing parent objects are never
// created. Analysis-error sentinels pass through untouched.
func (m *Merger) Merge(record llm.Record, f facts.AtomicFacts, t constants.DocumentType) llm.Record {
	if record == nil || llm.IsErrorRecord(record) {
		return record
	}

	for _, target := range m.reg.MergeTargets(t) {
		value := factValue(f, target.Fact)
		if value == "" {
			continue
		}

		parent, ok := record[target.Parent].(map[string]any)
		if !ok {
			// The model dropped the parent object; inventing top-level
			// structure is the model's job, not ours.
			continue
		}

		if plausible(parent[target.Field], target.Fact) {
			continue
		}

		m.logger.Debug("merge.fill", "type", string(t), "field", target.Parent+"."+target.Field, "fact", target.Fact)
		parent[target.Field] = value
	}
	return record
}

func factValue(f facts.AtomicFacts, kind string) string {
	switch kind {
	case "email":
		return f.Email
	case "phone":
		return f.Phone
	case "linkedin":
		return f.LinkedIn
	case "iban":
		return f.IBAN
	default:
		return ""
	}
}

// plausible reports whether an existing value should be kept. Non-string
// values and strings failing the kind's cheap structural check are treated as
// holes.
func plausible(v any, kind string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch kind {
	case "email":
		return strings.Contains(s, "@")
	case "linkedin":
		return strings.Contains(strings.ToLower(s), "linkedin")
	case "phone":
		return strings.ContainsAny(s, "0123456789")
	default:
		return true
	}
}
