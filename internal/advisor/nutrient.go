package advisor

import "strings"

// NoDeficiency is the nutrient guess returned when no disease keyword
// matches the label.
const NoDeficiency = "No deficiency"

type nutrientRule struct {
	keyword  string
	nutrient string
}

// diseaseToNutrient maps disease keywords to the soil nutrient most often
// associated with them. Declaration order matters: the first keyword found
// in the label wins, so a label containing both "blight" and "rust"
// resolves to Nitrogen.
var diseaseToNutrient = []nutrientRule{
	{"healthy", NoDeficiency},
	{"mildew", "Potassium"},
	{"blight", "Nitrogen"},
	{"spot", "Nitrogen"},
	{"rust", "Potassium"},
}

// GuessNutrient maps a normalized disease label to a suspected missing
// nutrient. This is a heuristic over keywords, not a measurement; an
// unrecognized label is a normal outcome and yields NoDeficiency.
func GuessNutrient(label string) string {
	lower := strings.ToLower(label)
	for _, rule := range diseaseToNutrient {
		if strings.Contains(lower, rule.keyword) {
			return rule.nutrient
		}
	}
	return NoDeficiency
}
