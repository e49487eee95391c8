package catalog

import "fmt"

// PlaceholderMismatch records a key whose translation uses a different
// placeholder set than the base locale.
type PlaceholderMismatch struct {
	Key  string
	Base []string
	Got  []string
}

func (m PlaceholderMismatch) String() string {
	return fmt.Sprintf("%s: base placeholders %v, got %v", m.Key, m.Base, m.Got)
}

// Coverage reports how completely a locale covers the base locale.
type Coverage struct {
	// Locale is the locale under report.
	Locale string

	// Base is the reference locale.
	Base string

	// Translated is the number of base keys present in the locale.
	Translated int

	// Total is the number of keys in the base locale.
	Total int

	// Missing lists base keys absent from the locale, in base order.
	Missing []string

	// Extra lists locale keys that do not exist in the base, in
	// document order.
	Extra []string

	// PlaceholderMismatches lists keys whose placeholder sets diverge
	// from the base.
	PlaceholderMismatches []PlaceholderMismatch
}

// Percent returns the translated fraction as a percentage.
// An empty base counts as fully covered.
func (c *Coverage) Percent() float64 {
	if c.Total == 0 {
		return 100
	}
	return float64(c.Translated) / float64(c.Total) * 100
}

// Complete returns true if every base key is translated with matching
// placeholders and no extra keys exist.
func (c *Coverage) Complete() bool {
	return len(c.Missing) == 0 && len(c.Extra) == 0 && len(c.PlaceholderMismatches) == 0
}

// Compare reports how completely a locale catalog covers a base catalog.
func Compare(base, locale *Catalog) *Coverage {
	cov := &Coverage{
		Locale: locale.Locale,
		Base:   base.Locale,
		Total:  base.Len(),
	}

	for _, bm := range base.Messages() {
		lm, ok := locale.Get(bm.Key)
		if !ok {
			cov.Missing = append(cov.Missing, bm.Key)
			continue
		}
		cov.Translated++

		if !placeholderSetsEqual(bm.Placeholders, lm.Placeholders) {
			cov.PlaceholderMismatches = append(cov.PlaceholderMismatches, PlaceholderMismatch{
				Key:  bm.Key,
				Base: bm.Placeholders,
				Got:  lm.Placeholders,
			})
		}
	}

	for _, key := range locale.Keys() {
		if !base.Has(key) {
			cov.Extra = append(cov.Extra, key)
		}
	}

	return cov
}

// Coverage reports a locale's coverage against the bundle's base locale.
func (b *Bundle) Coverage(locale string) (*Coverage, error) {
	base, ok := b.BaseCatalog()
	if !ok {
		return nil, fmt.Errorf("base locale %q not loaded", b.Base)
	}

	c, ok := b.Catalog(locale)
	if !ok {
		return nil, fmt.Errorf("locale %q not loaded", locale)
	}

	return Compare(base, c), nil
}
