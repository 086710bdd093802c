// Package i18n holds the uz/ru message catalog. Every user-facing text
// goes through T/Tf so каждый получает ответы на своем языке.
package i18n

import (
	"fmt"
	"os"
	"sync"

	"davomat/internal/models"

	yaml "gopkg.in/yaml.v2"
)

var mu sync.RWMutex

// T returns the message for a key in the given language. Falls back to
// Uzbek, then to the key itself so a missing translation never hides
// the reply entirely.
func T(lang, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	byLang, ok := catalog[key]
	if !ok {
		return key
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	if text, ok := byLang[models.LangUz]; ok {
		return text
	}
	return key
}

// Tf formats a parameterized message.
func Tf(lang, key string, args ...interface{}) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// LoadOverrides merges a YAML file of key -> lang -> text on top of the
// built-in catalog. Позволяет менять тексты без пересборки.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read messages file: %w", err)
	}

	var overrides map[string]map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse messages file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	for key, byLang := range overrides {
		if catalog[key] == nil {
			catalog[key] = make(map[string]string)
		}
		for lang, text := range byLang {
			catalog[key][lang] = text
		}
	}
	return nil
}
