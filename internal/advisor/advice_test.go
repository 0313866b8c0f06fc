package advisor

import (
	"strings"
	"testing"
)

func TestSeverityFromScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"zero", 0.0, "mild"},
		{"just-below-moderate", 0.399, "mild"},
		{"moderate-boundary", 0.4, "moderate"},
		{"mid", 0.69, "moderate"},
		{"severe-boundary", 0.7, "severe"},
		{"one", 1.0, "severe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SeverityFromScore(tt.score); got != tt.want {
				t.Errorf("SeverityFromScore(%v) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

const closingSentence = "Re-check the field in 3–5 days for changes or spreading."

func TestComposeAdviceAlwaysClosesWithReInspection(t *testing.T) {
	guides := DefaultGuides()
	labels := []string{"Healthy", "Powdery Mildew", "Totally unknown thing", ""}
	for _, label := range labels {
		advice := ComposeAdvice(guides, label, GuessNutrient(label), 0.5)
		if advice == "" {
			t.Fatalf("advice for %q is empty", label)
		}
		if !strings.HasSuffix(advice, closingSentence) {
			t.Errorf("advice for %q does not end with the re-inspection sentence: %q", label, advice)
		}
	}
}

func TestComposeAdviceHealthy(t *testing.T) {
	guides := DefaultGuides()
	advice := ComposeAdvice(guides, "Healthy", NoDeficiency, 0.95)

	if strings.Contains(advice, "Issue detected") {
		t.Errorf("healthy advice must not report an issue: %q", advice)
	}
	for _, want := range []string{
		"The crop appears healthy.",
		"No visible signs of stress or disease.",
		"Field Action: Continue your irrigation and fertilizer schedule.",
		"Nutrient status looks normal. Maintain your current fertilizer plan.",
		"Tip: Monitor your field weekly to catch early symptoms.",
	} {
		if !strings.Contains(advice, want) {
			t.Errorf("healthy advice missing %q: %q", want, advice)
		}
	}
}

func TestComposeAdviceKnownDisease(t *testing.T) {
	guides := DefaultGuides()
	advice := ComposeAdvice(guides, "Powdery Mildew", "Potassium", 0.82)

	for _, want := range []string{
		"White or grayish powder suggests fungal infection.",
		"Severity: **severe** (82.0% confidence).",
		"Field Action: Remove infected leaves and avoid overhead irrigation.",
		"Possible **Potassium deficiency**. Apply MOP fertilizer for disease resistance.",
		"Tip: Improve airflow and consider fungicides if spreading.",
	} {
		if !strings.Contains(advice, want) {
			t.Errorf("advice missing %q: %q", want, advice)
		}
	}
}

func TestComposeAdviceUnknownDisease(t *testing.T) {
	guides := DefaultGuides()
	advice := ComposeAdvice(guides, "Mystery wilt", NoDeficiency, 0.3)

	if !strings.Contains(advice, "Issue detected: Mystery wilt.") {
		t.Errorf("expected generic issue sentence, got %q", advice)
	}
	if !strings.Contains(advice, "Severity: **mild** (30.0% confidence).") {
		t.Errorf("expected mild severity sentence, got %q", advice)
	}
	// No guide record: neither field action nor tip may appear.
	if strings.Contains(advice, "Field Action:") || strings.Contains(advice, "Tip:") {
		t.Errorf("unknown disease must not get guide-specific sentences: %q", advice)
	}
}
