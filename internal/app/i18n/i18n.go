// Package i18n provides key-based translations for the console's three
// display languages. Catalogs are JSON files embedded at build time;
// keys are dot-separated paths into the nested catalog objects.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/sbenmansour/cessiondesk/internal/app/storage"
)

//go:embed locales/*.json
var localeFS embed.FS

// Language describes one supported display language.
type Language struct {
	Code  string
	Name  string
	IsRTL bool
}

// Supported lists the languages offered by the language switcher, in
// display order.
var Supported = []Language{
	{Code: "en", Name: "English"},
	{Code: "fr", Name: "Français"},
	{Code: "ar", Name: "العربية", IsRTL: true},
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
	language.Arabic,
})

// Translator resolves keys against the catalog of the active language,
// falling back to English and finally to the key itself. The active
// language is persisted so it survives restarts.
type Translator struct {
	mu       sync.RWMutex
	active   Language
	catalogs map[string]map[string]any
	store    storage.Store
	logger   *zap.Logger
}

// New loads the embedded catalogs and restores the persisted language,
// falling back to defaultCode when nothing was persisted.
func New(store storage.Store, defaultCode string, logger *zap.Logger) (*Translator, error) {
	t := &Translator{
		catalogs: make(map[string]map[string]any, len(Supported)),
		store:    store,
		logger:   logger,
	}

	for _, lang := range Supported {
		raw, err := localeFS.ReadFile("locales/" + lang.Code + ".json")
		if err != nil {
			return nil, errors.Wrapf(err, "reading catalog for %s", lang.Code)
		}
		var catalog map[string]any
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, errors.Wrapf(err, "parsing catalog for %s", lang.Code)
		}
		t.catalogs[lang.Code] = catalog
	}

	code := defaultCode
	if persisted, err := store.Get(storage.KeyLanguage); err == nil && persisted != "" {
		code = persisted
	}
	t.active = lookupLanguage(code)

	return t, nil
}

func lookupLanguage(code string) Language {
	for _, lang := range Supported {
		if lang.Code == code {
			return lang
		}
	}
	return Supported[0]
}

// Active returns the current display language.
func (t *Translator) Active() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// SetLanguage switches the active language and persists the choice.
// Unknown codes fall back to English.
func (t *Translator) SetLanguage(code string) {
	lang := lookupLanguage(code)

	t.mu.Lock()
	t.active = lang
	t.mu.Unlock()

	if err := t.store.Set(storage.KeyLanguage, lang.Code); err != nil {
		t.logger.Warn("Failed to persist language choice", zap.Error(err))
	}
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header value. An empty or unparseable header yields
// English.
func MatchAcceptLanguage(header string) Language {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, index, _ := matcher.Match(tags...)
	return Supported[index]
}

// T resolves a dot-separated key in the active language's catalog.
// Placeholders of the form {param} are replaced from params, and
// {one=...}{other=...} clauses are selected by the integer "count"
// param, with # standing for the count inside the chosen clause.
// Missing keys fall back to English, then to the key itself.
func (t *Translator) T(key string, params map[string]any) string {
	t.mu.RLock()
	active := t.active.Code
	t.mu.RUnlock()

	value, ok := resolve(t.catalogs[active], key)
	if !ok && active != "en" {
		value, ok = resolve(t.catalogs["en"], key)
	}
	if !ok {
		return key
	}

	if count, hasCount := asInt(params["count"]); hasCount {
		value = pluralize(value, count)
	}
	return interpolate(value, params)
}

func resolve(catalog map[string]any, key string) (string, bool) {
	node := any(catalog)
	for _, part := range strings.Split(key, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		node, ok = obj[part]
		if !ok {
			return "", false
		}
	}
	value, ok := node.(string)
	return value, ok
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// pluralize picks the {one=...} clause when count is 1 and the
// {other=...} clause otherwise, substituting # with the count. Values
// without plural clauses pass through unchanged.
func pluralize(value string, count int) string {
	clauses := parsePluralClauses(value)
	if len(clauses) == 0 {
		return value
	}

	form := "other"
	if count == 1 {
		form = "one"
	}
	clause, ok := clauses[form]
	if !ok {
		clause = clauses["other"]
	}
	return strings.ReplaceAll(clause, "#", fmt.Sprintf("%d", count))
}

func parsePluralClauses(value string) map[string]string {
	clauses := make(map[string]string)
	rest := value
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			break
		}
		body := rest[open+1 : open+end]
		rest = rest[open+end+1:]

		eq := strings.Index(body, "=")
		if eq < 0 {
			continue
		}
		clauses[body[:eq]] = body[eq+1:]
	}
	if _, ok := clauses["other"]; !ok {
		return nil
	}
	return clauses
}

func interpolate(value string, params map[string]any) string {
	for name, v := range params {
		if name == "count" {
			continue
		}
		value = strings.ReplaceAll(value, "{"+name+"}", fmt.Sprintf("%v", v))
	}
	return value
}
