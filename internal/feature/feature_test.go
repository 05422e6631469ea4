package feature

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistryOrder(t *testing.T) {
	r := Default()

	want := []string{
		"Temperature", "Humidity", "PM10", "NO2", "SO2", "CO",
		"Proximity_to_Industrial_Areas", "Population_Density",
	}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Fatalf("Names() mismatch (-want +got):\n%s", diff)
	}
	if r.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", r.Len())
	}
}

func TestDefaults(t *testing.T) {
	r := Default()
	d := r.Defaults()

	if len(d) != r.Len() {
		t.Fatalf("len(Defaults()) = %d, want %d", len(d), r.Len())
	}
	if d[0] != 29.9773 {
		t.Errorf("Temperature default = %v, want 29.9773", d[0])
	}
	if d[7] != 497.4067 {
		t.Errorf("Population_Density default = %v, want 497.4067", d[7])
	}
}

func TestFeaturesReturnsCopy(t *testing.T) {
	r := Default()
	fs := r.Features()
	fs[0].Default = -1

	if r.Defaults()[0] == -1 {
		t.Fatal("mutating Features() result changed the registry")
	}
}

func TestIndex(t *testing.T) {
	r := Default()

	i, ok := r.Index("CO")
	if !ok || i != 5 {
		t.Fatalf("Index(CO) = %d, %v; want 5, true", i, ok)
	}
	if _, ok := r.Index("Ozone"); ok {
		t.Fatal("Index(Ozone) should not be found")
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Feature{{Name: "A"}, {Name: "A"}})
	if err == nil {
		t.Fatal("expected error for duplicate names")
	}
}

func TestNewRegistryRejectsEmpty(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Fatal("expected error for empty registry")
	}
	if _, err := NewRegistry([]Feature{{Name: ""}}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(1.498345); got != "1.498345" {
		t.Fatalf("FormatValue = %q, want 1.498345", got)
	}
	if got := FormatValue(30); got != "30" {
		t.Fatalf("FormatValue = %q, want 30", got)
	}
}
