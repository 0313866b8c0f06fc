package advisor

import (
	"fmt"
	"strings"
)

// DiseaseInfo carries the static advisory knowledge for one disease label.
type DiseaseInfo struct {
	Summary     string
	FieldAction string
	Extra       string
}

// Guides holds the read-only agronomy knowledge used to compose advice.
// Build it once at startup with DefaultGuides and pass it around; it is
// never mutated and is safe for concurrent reads.
type Guides struct {
	Nutrients map[string]string
	Diseases  map[string]DiseaseInfo
}

// DefaultGuides returns the built-in advisory tables.
func DefaultGuides() Guides {
	return Guides{
		Nutrients: map[string]string{
			"Nitrogen":   "Apply a balanced nitrogen source (e.g., Urea or compost) in split doses.",
			"Phosphorus": "Use DAP fertilizer closer to the root zone.",
			"Potassium":  "Apply MOP fertilizer for disease resistance.",
			"Magnesium":  "Add Epsom salt for chlorophyll production.",
			NoDeficiency: "No nutrient deficiency detected; maintain your current schedule.",
		},
		Diseases: map[string]DiseaseInfo{
			"Healthy": {
				Summary:     "The crop appears healthy.",
				FieldAction: "Continue your irrigation and fertilizer schedule.",
				Extra:       "Monitor your field weekly to catch early symptoms.",
			},
			"Powdery Mildew": {
				Summary:     "White or grayish powder suggests fungal infection.",
				FieldAction: "Remove infected leaves and avoid overhead irrigation.",
				Extra:       "Improve airflow and consider fungicides if spreading.",
			},
			"Leaf Blast": {
				Summary:     "Irregular lesions indicate blast disease.",
				FieldAction: "Avoid excess nitrogen; ensure proper drainage.",
				Extra:       "Use resistant varieties if available.",
			},
			"Bacterial Blight": {
				Summary:     "Water-soaked lesions and wilting indicate bacterial blight.",
				FieldAction: "Remove infected plants and avoid touching leaves when wet.",
				Extra:       "Use clean tools and disease-free seeds.",
			},
			"Early Blight": {
				Summary:     "Brown concentric rings indicate early blight.",
				FieldAction: "Remove affected leaves and reduce moisture duration.",
				Extra:       "Practice crop rotation and proper spacing.",
			},
		},
	}
}

// SeverityFromScore buckets model confidence into a coarse tier for
// human-readable phrasing. 0.4 is moderate, 0.7 is severe.
func SeverityFromScore(score float64) string {
	switch {
	case score < 0.4:
		return "mild"
	case score < 0.7:
		return "moderate"
	default:
		return "severe"
	}
}

// ComposeAdvice assembles the advisory text for a normalized label, a
// nutrient guess, and the model confidence. Sentences are appended in a
// fixed order and joined with single spaces; the closing re-inspection
// sentence is always present, so the result is never empty.
func ComposeAdvice(guides Guides, label, nutrient string, score float64) string {
	severity := SeverityFromScore(score)
	disease, hasDisease := guides.Diseases[label]

	var parts []string

	if strings.HasPrefix(strings.ToLower(label), "healthy") {
		parts = append(parts,
			"The crop appears healthy.",
			"No visible signs of stress or disease.",
		)
	} else {
		summary := disease.Summary
		if summary == "" {
			summary = fmt.Sprintf("Issue detected: %s.", label)
		}
		parts = append(parts, fmt.Sprintf(
			"%s Severity: **%s** (%.1f%% confidence).", summary, severity, score*100,
		))
	}

	if hasDisease && disease.FieldAction != "" {
		parts = append(parts, "Field Action: "+disease.FieldAction)
	}

	if nutrient == NoDeficiency {
		parts = append(parts, "Nutrient status looks normal. Maintain your current fertilizer plan.")
	} else {
		parts = append(parts, fmt.Sprintf(
			"Possible **%s deficiency**. %s", nutrient, guides.Nutrients[nutrient],
		))
	}

	if hasDisease && disease.Extra != "" {
		parts = append(parts, "Tip: "+disease.Extra)
	}

	parts = append(parts, "Re-check the field in 3–5 days for changes or spreading.")

	return strings.Join(parts, " ")
}
