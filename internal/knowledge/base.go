package knowledge

import (
	"strings"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
)

// Product is one entry of the dynamically assembled catalog.
type Product struct {
	Name        string
	Description string
	Price       int
	Benefits    []string
	Ingredients []string
}

// Benefit is a health benefit with its detail copy.
type Benefit struct {
	Title  string
	Detail string
}

// FAQEntry keeps the question keyphrase and its canned answer. Entries are
// matched in declaration order; the first hit wins.
type FAQEntry struct {
	Question string
	Answer   string
}

// LegacyProduct is a name keyphrase plus description from the original
// hard-coded map, scanned in declaration order.
type LegacyProduct struct {
	Key         string
	Description string
}

// Base is the full knowledge state: the legacy static data plus the
// programmatically assembled catalog. Loaded once at process start and
// read-only afterwards.
type Base struct {
	Products       []Product
	Benefits       []Benefit
	LegacyProducts []LegacyProduct
	FAQ            []FAQEntry
}

// FindProduct returns the first catalog product whose name appears in the
// lowercased message, or nil.
func (b *Base) FindProduct(lowerMessage string) *Product {
	for i := range b.Products {
		if strings.Contains(lowerMessage, strings.ToLower(b.Products[i].Name)) {
			return &b.Products[i]
		}
	}
	return nil
}

// ProductNames lists the catalog product names in declaration order.
func (b *Base) ProductNames() []string {
	names := make([]string, len(b.Products))
	for i, p := range b.Products {
		names[i] = p.Name
	}
	return names
}

// BenefitTitles lists the catalog benefit titles in declaration order.
func (b *Base) BenefitTitles() []string {
	titles := make([]string, len(b.Benefits))
	for i, bn := range b.Benefits {
		titles[i] = bn.Title
	}
	return titles
}

// MatchesLegacyProduct reports whether the token is a substring of any legacy
// product name. Used by the lexical scorer.
func (b *Base) MatchesLegacyProduct(token string) bool {
	if token == "" {
		return false
	}
	for _, p := range b.LegacyProducts {
		if strings.Contains(p.Key, token) {
			return true
		}
	}
	return false
}

// DataTemplate is the data-integration answer keyed by intent. It covers the
// benefit-detail and ingredient queries that the legacy branches cannot
// answer; everything else returns "" so the legacy knowledge paths stay
// reachable.
func (b *Base) DataTemplate(message string, intent entity.Intent) string {
	lower := strings.ToLower(message)

	if intent == entity.IntentBenefits {
		for _, bn := range b.Benefits {
			if strings.Contains(lower, strings.ToLower(bn.Title)) {
				return bn.Title + ": " + bn.Detail + " Ingin tahu manfaat lainnya?"
			}
		}
	}

	if strings.Contains(lower, "kandungan") || strings.Contains(lower, "bahan") {
		if p := b.FindProduct(lower); p != nil {
			return "Kombucha " + p.Name + " dibuat dari " + strings.Join(p.Ingredients, ", ") +
				". Semua bahan kami alami dan difermentasi dengan SCOBY pilihan."
		}
	}

	return ""
}
