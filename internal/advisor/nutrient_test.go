package advisor

import "testing"

func TestGuessNutrient(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"healthy", "Healthy", NoDeficiency},
		{"mildew", "Powdery mildew", "Potassium"},
		{"blight", "Early blight", "Nitrogen"},
		{"spot", "Angular leaf spot", "Nitrogen"},
		{"rust", "Bean rust", "Potassium"},
		{"unknown", "Unknown disease", NoDeficiency},
		{"empty", "", NoDeficiency},
		{"case-insensitive", "BACTERIAL BLIGHT", "Nitrogen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessNutrient(tt.label); got != tt.want {
				t.Errorf("GuessNutrient(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

// A label matching several keywords resolves to the first rule in
// declaration order, not the first keyword in the label text.
func TestGuessNutrientFirstMatchWins(t *testing.T) {
	// "blight" is declared before "rust".
	if got := GuessNutrient("Rust blight"); got != "Nitrogen" {
		t.Errorf("GuessNutrient(%q) = %q, want Nitrogen", "Rust blight", got)
	}
	// "healthy" is declared before everything else.
	if got := GuessNutrient("Healthy rust"); got != NoDeficiency {
		t.Errorf("GuessNutrient(%q) = %q, want %q", "Healthy rust", got, NoDeficiency)
	}
}
