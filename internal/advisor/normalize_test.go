package advisor

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"underscores", "bean_rust", "Bean rust"},
		{"empty", "", "Unknown"},
		{"only-underscores", "___", "Unknown"},
		{"whitespace", "  ", "Unknown"},
		{"already-capitalized", "Healthy", "Healthy"},
		{"lowercase", "healthy", "Healthy"},
		{"mixed-case-preserved", "angular_Leaf_Spot", "Angular Leaf Spot"},
		{"leading-underscore", "_rust", "Rust"},
		{"single-char", "x", "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.raw); got != tt.want {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
