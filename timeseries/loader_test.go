package timeseries

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadText(t *testing.T) {
	input := "  0.52 0.55\n0.49\t0.61 \n1.2e-1\n"

	series, err := ReadText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}

	expected := []float64{0.52, 0.55, 0.49, 0.61, 0.12}
	if series.Len() != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), series.Len())
	}
	for i, want := range expected {
		if series.Values[i] != want {
			t.Errorf("value %d: expected %f, got %f (order must be preserved)", i, want, series.Values[i])
		}
	}
}

func TestReadTextEmpty(t *testing.T) {
	if _, err := ReadText(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ReadText(strings.NewReader("  \n\t ")); err == nil {
		t.Error("expected error for whitespace-only input")
	}
}

func TestReadTextInvalidToken(t *testing.T) {
	if _, err := ReadText(strings.NewReader("0.1 0.2 abc 0.4")); err == nil {
		t.Error("expected error for non-numeric token")
	}
}

func TestLoadSaveTextRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	values := []float64{0.5, 0.25, 0.75, 1}

	if err := SaveText(values, path); err != nil {
		t.Fatalf("SaveText failed: %v", err)
	}

	series, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText failed: %v", err)
	}
	if series.Len() != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), series.Len())
	}
	for i, want := range values {
		if series.Values[i] != want {
			t.Errorf("value %d: expected %f, got %f", i, want, series.Values[i])
		}
	}
}

func TestLoadTextMissingFile(t *testing.T) {
	if _, err := LoadText(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadCSVColumn(t *testing.T) {
	input := "date,value,volume\n2024-01-01,0.5,100\n2024-01-02,NA,90\n2024-01-03,0.7,80\n"

	series, err := ReadCSVColumn(strings.NewReader(input), "value")
	if err != nil {
		t.Fatalf("ReadCSVColumn failed: %v", err)
	}
	if series.Len() != 2 || series.Values[0] != 0.5 || series.Values[1] != 0.7 {
		t.Errorf("expected [0.5 0.7], got %v", series.Values)
	}
	if series.Name != "value" {
		t.Errorf("expected series name %q, got %q", "value", series.Name)
	}
}

func TestReadCSVColumnDefaultsToLast(t *testing.T) {
	input := "date,y\n2024-01-01,1.5\n2024-01-02,2.5\n"

	series, err := ReadCSVColumn(strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("ReadCSVColumn failed: %v", err)
	}
	if series.Len() != 2 || series.Values[1] != 2.5 {
		t.Errorf("expected last column values, got %v", series.Values)
	}
}

func TestReadCSVColumnErrors(t *testing.T) {
	if _, err := ReadCSVColumn(strings.NewReader("a,b\n1,2\n"), "missing"); err == nil {
		t.Error("expected error for unknown column")
	}
	if _, err := ReadCSVColumn(strings.NewReader("a,b\nx,y\n"), "b"); err == nil {
		t.Error("expected error when no numeric rows remain")
	}
}

func TestLoadCSVColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("y\n0.1\n0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	series, err := LoadCSVColumn(path, "y")
	if err != nil {
		t.Fatalf("LoadCSVColumn failed: %v", err)
	}
	if series.Len() != 2 {
		t.Errorf("expected 2 values, got %d", series.Len())
	}
}
