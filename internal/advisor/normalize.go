package advisor

import "strings"

// NormalizeLabel converts a raw model label token into a display-friendly
// string, e.g. "bean_rust" -> "Bean rust". Underscores become spaces, the
// result is trimmed and only the first character is upper-cased; the rest
// of the label keeps whatever casing the model emitted.
func NormalizeLabel(raw string) string {
	label := strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
