package catalog

import (
	"sort"
	"strings"
)

// Message is one translated string with its extracted placeholder names.
type Message struct {
	// Key is the dotted key path (e.g. "config.step.user.title").
	Key string

	// Text is the localized string.
	Text string

	// Placeholders lists the placeholder names appearing in Text,
	// sorted and de-duplicated.
	Placeholders []string
}

// Catalog is one locale's translation table.
type Catalog struct {
	// Locale is the locale tag (e.g. "en", "de", "pt-BR").
	Locale string

	entries []Message
	byKey   map[string]int
}

// newCatalog builds a catalog from flattened entries in document order.
func newCatalog(locale string, entries []Message) *Catalog {
	c := &Catalog{
		Locale:  locale,
		entries: entries,
		byKey:   make(map[string]int, len(entries)),
	}
	for i, m := range entries {
		c.byKey[m.Key] = i
	}
	return c
}

// Len returns the number of messages.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns the message for a dotted key.
func (c *Catalog) Get(key string) (Message, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Message{}, false
	}
	return c.entries[i], true
}

// Has returns true if the key is present.
func (c *Catalog) Has(key string) bool {
	_, ok := c.byKey[key]
	return ok
}

// Text returns the localized string for a key, or empty if absent.
func (c *Catalog) Text(key string) string {
	m, ok := c.Get(key)
	if !ok {
		return ""
	}
	return m.Text
}

// Messages returns all messages in document order.
func (c *Catalog) Messages() []Message {
	out := make([]Message, len(c.entries))
	copy(out, c.entries)
	return out
}

// Keys returns all keys in document order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, m := range c.entries {
		keys[i] = m.Key
	}
	return keys
}

// KeysUnder returns the keys under a dotted prefix, in document order.
// The prefix itself is included if it names a leaf.
func (c *Catalog) KeysUnder(prefix string) []string {
	var keys []string
	for _, m := range c.entries {
		if m.Key == prefix || strings.HasPrefix(m.Key, prefix+".") {
			keys = append(keys, m.Key)
		}
	}
	return keys
}

// Render substitutes placeholder values into the message for a key.
// Unknown keys return empty; unknown placeholders are left untouched.
func (c *Catalog) Render(key string, vars map[string]string) string {
	m, ok := c.Get(key)
	if !ok {
		return ""
	}
	return Render(m.Text, vars)
}

// Bundle is a set of catalogs keyed by locale with a designated base locale.
type Bundle struct {
	// Base is the reference locale tag (usually "en").
	Base string

	catalogs map[string]*Catalog
}

// NewBundle creates an empty bundle with the given base locale.
func NewBundle(base string) *Bundle {
	return &Bundle{
		Base:     base,
		catalogs: make(map[string]*Catalog),
	}
}

// Add inserts or replaces a locale's catalog.
func (b *Bundle) Add(c *Catalog) {
	b.catalogs[c.Locale] = c
}

// Catalog returns the catalog for a locale.
func (b *Bundle) Catalog(locale string) (*Catalog, bool) {
	c, ok := b.catalogs[locale]
	return c, ok
}

// BaseCatalog returns the base locale's catalog.
func (b *Bundle) BaseCatalog() (*Catalog, bool) {
	return b.Catalog(b.Base)
}

// Locales returns all locale tags in sorted order.
func (b *Bundle) Locales() []string {
	locales := make([]string, 0, len(b.catalogs))
	for l := range b.catalogs {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Lookup resolves a key in the given locale, falling back to the base
// locale when the translation is missing.
func (b *Bundle) Lookup(locale, key string) (Message, bool) {
	if c, ok := b.catalogs[locale]; ok {
		if m, ok := c.Get(key); ok {
			return m, true
		}
	}
	if c, ok := b.BaseCatalog(); ok {
		return c.Get(key)
	}
	return Message{}, false
}
