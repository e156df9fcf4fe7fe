package dashboard

import (
	"context"
	"strings"
)

// Translation keys used by the tab editor.
const (
	TranslationKeyDefaultTabName = "dashboard.tabs.default_name"
)

// TranslationService exposes locale-aware translation helpers. Implementations can
// provide pluralization or interpolation; the editor only needs plain lookups.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

// MapTranslations is a TranslationService backed by per-locale maps keyed by
// translation key. Language-region locales (`es-mx`) fall back to `es`.
type MapTranslations map[string]map[string]string

// Translate resolves key for locale.
func (m MapTranslations) Translate(_ context.Context, key, locale string, _ map[string]any) (string, error) {
	values := make(map[string]string, len(m))
	for loc, entries := range m {
		if value, ok := entries[key]; ok {
			values[loc] = value
		}
	}
	return ResolveLocalizedValue(values, locale, ""), nil
}

// ResolveLocalizedValue selects the best translation for the provided locale and falls back to the supplied value.
// Keys are matched case-insensitively, and language-region pairs (`es-mx`) automatically fall back to their
// base language (`es`) when present.
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

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return []string{"default"}
	}
	candidates := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		candidates = append(candidates, locale[:idx])
	}
	return append(candidates, "default")
}

func normalizeLocale(locale string) string {
	return strings.TrimSpace(strings.ToLower(locale))
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
