// Package i18n formats the localized messages shown after a run.
// Catalogs are YAML maps of key to template; "{name}" placeholders are
// replaced with locale-formatted parameter values.
package i18n

import (
	"embed"
	"fmt"
	"math"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// supported lists bundled catalogs; the first entry is the fallback.
var supported = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// Catalog is a loaded set of templates for one language.
type Catalog struct {
	tag       language.Tag
	templates map[string]string
	fallback  map[string]string
	printer   *message.Printer
}

// Load returns the catalog best matching locale (e.g. "es-MX", "en").
// Unknown locales fall back to English.
func Load(locale string) (*Catalog, error) {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()

	templates, err := readCatalog(base.String())
	if err != nil {
		templates, err = readCatalog("en")
		if err != nil {
			return nil, err
		}
		tag = language.English
	}

	fallback := templates
	if base.String() != "en" {
		if en, enErr := readCatalog("en"); enErr == nil {
			fallback = en
		}
	}

	return &Catalog{
		tag:       tag,
		templates: templates,
		fallback:  fallback,
		printer:   message.NewPrinter(tag),
	}, nil
}

// MustLoad is Load for callers with a hardcoded locale.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale)
	if err != nil {
		panic(err)
	}
	return c
}

func readCatalog(name string) (map[string]string, error) {
	data, err := catalogFS.ReadFile(path.Join("catalogs", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("i18n: no catalog for %q: %w", name, err)
	}
	templates := make(map[string]string)
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("i18n: parsing catalog %q: %w", name, err)
	}
	return templates, nil
}

// Tag returns the language the catalog renders in.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Has reports whether key exists in the catalog or its English fallback.
func (c *Catalog) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

func (c *Catalog) lookup(key string) (string, bool) {
	if tmpl, ok := c.templates[key]; ok {
		return tmpl, true
	}
	tmpl, ok := c.fallback[key]
	return tmpl, ok
}

// Format renders key with params. A missing key renders as the key itself;
// a placeholder without a parameter is left untouched.
func (c *Catalog) Format(key string, params map[string]any) string {
	tmpl, ok := c.lookup(key)
	if !ok {
		return key
	}
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok {
			return m
		}
		return c.printer.Sprint(normalize(v))
	})
}

// normalize prints whole floats as integers so "10" is not rendered as "10.0".
func normalize(v any) any {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return v
	}
	return int64(f)
}
