package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pref string
		want language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"es", language.Spanish},
		{"es-CO", language.Spanish},
		{"fr-CH, es;q=0.8, en;q=0.5", language.Spanish},
		{"de", language.English},
		{"!!not a tag", language.English},
	}
	for _, tt := range tests {
		got := Match(tt.pref)
		base, _ := got.Base()
		wantBase, _ := tt.want.Base()
		if base != wantBase {
			t.Errorf("Match(%q) = %v, want %v", tt.pref, got, tt.want)
		}
	}
}

func TestSpanishTranslation(t *testing.T) {
	p := NewPrinter("es")
	got := p.Sprintf("Predict Air Quality")
	if got != "Predecir Calidad del Aire" {
		t.Fatalf("got %q", got)
	}
}

func TestEnglishPassthrough(t *testing.T) {
	p := English()
	got := p.Sprintf("Predict Air Quality")
	if got != "Predict Air Quality" {
		t.Fatalf("got %q", got)
	}
}

func TestFormattedMessage(t *testing.T) {
	p := NewPrinter("es")
	got := p.Sprintf("Invalid value %q for %s, using default %s.", "abc", "CO", "1.5")
	want := `Valor inválido "abc" para CO, se usa el valor por defecto 1.5.`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
