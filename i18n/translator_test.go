package i18n_test

import (
	"testing"

	"github.com/spindlelabs/avro/i18n"
)

func TestDefaultEnglishMessages(t *testing.T) {
	if got := i18n.T("duplicate_name", nil); got != "cannot add duplicate name" {
		t.Fatalf("T(duplicate_name) = %q", got)
	}
	if got := i18n.T("unresolved_symbol", nil); got != "could not follow symbol" {
		t.Fatalf("T(unresolved_symbol) = %q", got)
	}
}

func TestUnknownCodeFallsThrough(t *testing.T) {
	if got := i18n.T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown code must echo itself, got %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	i18n.SetLanguage("ja")
	defer i18n.SetLanguage("en")
	if got := i18n.T("duplicate_name", nil); got != "名前が重複しています" {
		t.Fatalf("ja T(duplicate_name) = %q", got)
	}

	// Anything but "ja" falls back to English.
	i18n.SetLanguage("fr")
	if got := i18n.T("duplicate_name", nil); got != "cannot add duplicate name" {
		t.Fatalf("fallback T(duplicate_name) = %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "!" + code }

func TestSetTranslator(t *testing.T) {
	i18n.SetTranslator(upperTranslator{})
	if got := i18n.T("parse_error", nil); got != "!parse_error" {
		t.Fatalf("custom translator ignored, got %q", got)
	}
	i18n.SetTranslator(nil)
	if got := i18n.T("parse_error", nil); got != "parse error" {
		t.Fatalf("nil must restore the dictionary, got %q", got)
	}
}
