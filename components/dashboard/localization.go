package dashboard

import (
	"strings"

	"golang.org/x/text/language"
)

// ResolveLocalizedValue selects the best translation for locale and falls back
// to fallback. Keys match case-insensitively and a regional locale (es-MX)
// falls back to its base language (es) and then to a "default" entry.
func ResolveLocalizedValue(values map[string]string, locale, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	for _, candidate := range localeCandidates(locale) {
		for key, value := range values {
			if strings.EqualFold(key, candidate) && value != "" {
				return value
			}
		}
	}
	return fallback
}

func normalizeLocaleMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	normalized := make(map[string]string, len(values))
	for key, value := range values {
		key = normalizeLocale(key)
		if key == "" || value == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if tag, err := language.Parse(locale); err == nil {
		if base, conf := tag.Base(); conf != language.No {
			if b := base.String(); b != locale {
				candidates = append(candidates, b)
			}
		}
	} else if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" || strings.EqualFold(locale, "default") {
		return strings.ToLower(locale)
	}
	if tag, err := language.Parse(locale); err == nil {
		return strings.ToLower(tag.String())
	}
	return strings.ToLower(locale)
}
