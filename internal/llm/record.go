// Package llm builds type-directed extraction prompts, invokes an inference
// backend, and recovers a structured record from its possibly noisy output.
package llm

// Record is the structured object recovered from the inference service. Its
// shape is expected to follow the registry template for the document type but
// is only trusted syntactically.
type Record = map[string]any

// errorKey marks a sentinel record produced when analysis failed. The
// pipeline emits these instead of aborting the run.
const errorKey = "analysis_error"

// ErrorRecord builds the sentinel record carrying an error description.
func ErrorRecord(reason string) Record {
	return Record{errorKey: reason}
}

// IsErrorRecord reports whether r is an analysis-failure sentinel.
func IsErrorRecord(r Record) bool {
	if r == nil {
		return false
	}
	_, ok := r[errorKey]
	return ok
}
