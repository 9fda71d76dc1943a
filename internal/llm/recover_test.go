package llm

import (
	"reflect"
	"testing"
)

func TestRecoverJSON(t *testing.T) {
	want := Record{"title": "Rapport", "pages": float64(3)}

	tests := []struct {
		name string
		in   string
	}{
		{"bare", `{"title":"Rapport","pages":3}`},
		{"fenced", "```json\n{\"title\":\"Rapport\",\"pages\":3}\n```"},
		{"fenced no lang", "```\n{\"title\":\"Rapport\",\"pages\":3}\n```"},
		{"prose wrapped", "Voici le JSON demandé :\n{\"title\":\"Rapport\",\"pages\":3}\nJ'espère que cela convient."},
		{"fenced and prose", "Bien sûr !\n```json\n{\"title\":\"Rapport\",\"pages\":3}\n```\nVoilà."},
		{"trailing whitespace", "  {\"title\":\"Rapport\",\"pages\":3}   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecoverJSON(tt.in)
			if err != nil {
				t.Fatalf("RecoverJSON: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestRecoverJSONNested(t *testing.T) {
	in := "```json\n{\"issuer\":{\"name\":\"Acme\"},\"line_items\":[{\"amount\":\"10\"}]}\n```"
	got, err := RecoverJSON(in)
	if err != nil {
		t.Fatalf("RecoverJSON: %v", err)
	}
	issuer, ok := got["issuer"].(map[string]any)
	if !ok || issuer["name"] != "Acme" {
		t.Errorf("nested object lost: %v", got)
	}
}

func TestRecoverJSONFailures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no braces", "je ne peux pas répondre en JSON"},
		{"broken json", "{\"title\": \"Rapport\""},
		{"reversed braces", "} puis {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RecoverJSON(tt.in); err == nil {
				t.Errorf("RecoverJSON(%q) = nil error, want failure", tt.in)
			}
		})
	}
}

func TestErrorRecord(t *testing.T) {
	r := ErrorRecord("service unreachable")
	if !IsErrorRecord(r) {
		t.Error("IsErrorRecord(ErrorRecord(...)) = false")
	}
	if IsErrorRecord(Record{"title": "ok"}) {
		t.Error("IsErrorRecord(normal record) = true")
	}
	if IsErrorRecord(nil) {
		t.Error("IsErrorRecord(nil) = true")
	}
}
