// Package localization loads user-facing notice strings from per-language
// JSON files. The service is Hebrew-first; missing keys fall back to
// Hebrew, then to the key itself.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const fallbackLang = "he"

// Localizer holds the loaded translations, keyed by language code.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads every <lang>.json file in dir.
func NewLocalizer(dir string) (*Localizer, error) {
	l := &Localizer{translations: make(map[string]map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var strs map[string]string
		if err := json.Unmarshal(data, &strs); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		l.translations[strings.TrimSuffix(entry.Name(), ".json")] = strs
	}
	return l, nil
}

// GetString returns the string for key in lang, falling back to Hebrew and
// finally to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if strs, ok := l.translations[lang]; ok {
		if v, ok := strs[key]; ok {
			return v
		}
	}
	if lang != fallbackLang {
		if strs, ok := l.translations[fallbackLang]; ok {
			if v, ok := strs[key]; ok {
				return v
			}
		}
	}
	return key
}
