package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"São Paulo", "sao paulo"},
		{"Sao paulo", "sao paulo"},
		{"CRÍTICO", "critico"},
		{"Médio", "medio"},
		{"Incêndio", "incendio"},
		{"", ""},
		{"Curitiba", "curitiba"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual_IgnoresAccentsAndCase(t *testing.T) {
	if !Equal("São Paulo", "Sao paulo") {
		t.Error("expected São Paulo and Sao paulo to be equal")
	}
	if Equal("Salvador", "São Paulo") {
		t.Error("expected Salvador and São Paulo to differ")
	}
}

func TestContains(t *testing.T) {
	if !Contains("Rio de Janeiro", "JANE") {
		t.Error("expected case-insensitive match")
	}
	if !Contains("São Paulo", "sao") {
		t.Error("expected accent-insensitive match")
	}
	if Contains("Manaus", "rio") {
		t.Error("unexpected match")
	}
}

func TestLen_CountsRunesAfterNormalizing(t *testing.T) {
	if got := Len("Sã"); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := Len("a"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}
