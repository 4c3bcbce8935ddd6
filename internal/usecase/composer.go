package usecase

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/knowledge"
)

// Composer renders a reply for an intent when no external text was produced.
// It is deterministic given the knowledge state: data-integration template
// first, then the legacy knowledge branches, and every branch ends in a fixed
// fallback string so the result is never empty.
type Composer struct {
	kb      *knowledge.Base
	printer *message.Printer
}

func NewComposer(kb *knowledge.Base) *Composer {
	return &Composer{
		kb:      kb,
		printer: message.NewPrinter(language.Indonesian),
	}
}

func (c *Composer) Compose(msg string, intent entity.Intent) string {
	if resp := c.kb.DataTemplate(msg, intent); resp != "" {
		return resp
	}

	lower := strings.ToLower(msg)

	switch {
	case intent == entity.IntentProduct:
		if p := c.kb.FindProduct(lower); p != nil {
			benefits := p.Benefits
			if len(benefits) > 2 {
				benefits = benefits[:2]
			}
			return fmt.Sprintf("%s Harga: Rp %s. Manfaat utama: %s. Ada yang ingin ditanyakan lebih lanjut?",
				p.Description, c.printer.Sprintf("%d", p.Price), strings.Join(benefits, " dan "))
		}
		for _, lp := range c.kb.LegacyProducts {
			if strings.Contains(lower, lp.Key) {
				return fmt.Sprintf("%s Apakah ada yang ingin Anda ketahui lebih lanjut tentang kombucha %s?",
					lp.Description, lp.Key)
			}
		}
		return fmt.Sprintf("Kami memiliki berbagai varian kombucha: %s. Varian mana yang ingin Anda ketahui?",
			strings.Join(c.kb.ProductNames(), ", "))

	case intent == entity.IntentFAQ:
		for _, entry := range c.kb.FAQ {
			if c.faqMatches(entry.Question, lower) {
				return entry.Answer
			}
		}
		return "Silakan bertanya tentang harga, cara pembelian, cara konsumsi, atau efek samping kombucha."

	case intent == entity.IntentBenefits || strings.Contains(lower, "manfaat") || strings.Contains(lower, "khasiat"):
		return fmt.Sprintf("Kombucha memiliki banyak manfaat: %s. Ingin tahu lebih detail tentang manfaat tertentu?",
			strings.Join(c.kb.BenefitTitles(), ", "))

	case intent == entity.IntentGreeting || strings.Contains(lower, "halo") || strings.Contains(lower, "hai") || strings.Contains(lower, "hello"):
		return "Halo! Selamat datang di Amethyst Kombucha. Ada yang bisa saya bantu mengenai produk kombucha kami?"

	default:
		return "Maaf, saya belum sepenuhnya memahami pertanyaan Anda. Anda bisa bertanya tentang produk kombucha kami, manfaat, harga, atau cara pembelian. Ada yang spesifik yang ingin Anda ketahui?"
	}
}

// faqMatches mirrors the legacy matching rules: the first word of the
// question keyphrase, plus special cases for the pricing, purchase and
// side-effect entries. Entries are tried in declaration order.
func (c *Composer) faqMatches(question, lowerMessage string) bool {
	firstWord := strings.Fields(question)[0]
	if strings.Contains(lowerMessage, firstWord) {
		return true
	}
	if strings.Contains(question, "harga") && strings.Contains(lowerMessage, "harga") {
		return true
	}
	if strings.Contains(question, "beli") && (strings.Contains(lowerMessage, "beli") || strings.Contains(lowerMessage, "dimana")) {
		return true
	}
	if strings.Contains(question, "efek") && strings.Contains(lowerMessage, "efek") {
		return true
	}
	return false
}
