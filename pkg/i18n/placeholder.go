package i18n

import (
	"fmt"
	"maps"
	"strings"
)

// M carries replacement values for template placeholders.
type M map[string]any

// ReplacePlaceholders replaces {{name}} placeholders in the template with
// values from the provided map. Values are coerced to strings. A placeholder
// with no matching entry is left unchanged.
//
// Example:
//
//	template: "Hello, {{name}}! You have {{count}} messages."
//	replacements: M{"name": "Dev", "count": 5}
//	returns: "Hello, Dev! You have 5 messages."
func ReplacePlaceholders(template string, replacements M) string {
	if len(replacements) < 1 {
		return template
	}

	result := template
	for key, value := range replacements {
		placeholder := "{{" + key + "}}"
		result = strings.ReplaceAll(result, placeholder, fmt.Sprintf("%v", value))
	}

	return result
}

func replaceWithMerge(template string, replacements ...M) string {
	if len(replacements) == 0 {
		return template
	}

	merged := make(M)
	for _, r := range replacements {
		maps.Copy(merged, r)
	}

	return ReplacePlaceholders(template, merged)
}
