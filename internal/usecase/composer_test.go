package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fxrrysalim/amethyst-kombucha-app/internal/domain/entity"
	"github.com/fxrrysalim/amethyst-kombucha-app/internal/knowledge"
)

func newComposer() *Composer {
	return NewComposer(knowledge.Build())
}

func TestCompose_NeverEmpty(t *testing.T) {
	c := newComposer()

	intents := []entity.Intent{
		entity.IntentProduct, entity.IntentFAQ, entity.IntentBenefits,
		entity.IntentGreeting, entity.IntentGeneral,
	}
	messages := []string{"", "halo", "asdf qwerty", "teh hijau", "berapa harga?", "manfaat"}

	for _, intent := range intents {
		for _, msg := range messages {
			assert.NotEmpty(t, c.Compose(msg, intent), "intent %s message %q", intent, msg)
		}
	}
}

func TestCompose_Greeting(t *testing.T) {
	c := newComposer()

	want := "Halo! Selamat datang di Amethyst Kombucha. Ada yang bisa saya bantu mengenai produk kombucha kami?"
	assert.Equal(t, want, c.Compose("halo", entity.IntentGreeting))

	// Greeting keywords route here even when the classifier said general.
	assert.Equal(t, want, c.Compose("hello bot", entity.IntentGeneral))
}

func TestCompose_ProductFromCatalog(t *testing.T) {
	c := newComposer()

	got := c.Compose("berapa harga kombucha teh hijau?", entity.IntentProduct)
	assert.Contains(t, got, "Kombucha Teh Hijau kaya akan antioksidan")
	assert.Contains(t, got, "Harga: Rp 25.000.")
	assert.Contains(t, got, "Manfaat utama: Tinggi antioksidan dan Meningkatkan metabolisme.")
	assert.Contains(t, got, "Ada yang ingin ditanyakan lebih lanjut?")
}

func TestCompose_ProductListFallback(t *testing.T) {
	c := newComposer()

	got := c.Compose("mau lihat produk dong", entity.IntentProduct)
	assert.Contains(t, got, "Kami memiliki berbagai varian kombucha:")
	for _, name := range []string{"Teh Hijau", "Teh Hitam", "Bunga Telang", "Daun Kelor", "Bunga Amarant", "Kopi"} {
		assert.Contains(t, got, name)
	}
	assert.Contains(t, got, "Varian mana yang ingin Anda ketahui?")
}

func TestCompose_FAQMatching(t *testing.T) {
	c := newComposer()

	cases := []struct {
		message string
		want    string
	}{
		{"apa itu kombucha sebenarnya", "Kombucha adalah minuman fermentasi"},
		{"bagaimana cara minumnya", "sebaiknya diminum 1-2 gelas per hari"},
		{"ada efek samping tidak", "umumnya aman dikonsumsi"},
		{"harga satu botol", "mulai dari Rp 25.000 hingga Rp 45.000"},
		{"dimana saya bisa membelinya", "melalui website ini"},
	}
	for _, tc := range cases {
		got := c.Compose(tc.message, entity.IntentFAQ)
		assert.Contains(t, got, tc.want, "message %q", tc.message)
	}

	// Entries match in declaration order on the first word of the question
	// keyphrase. "berapa" contains "apa", so the definition entry wins over
	// the pricing entry for this message.
	got := c.Compose("berapa harga?", entity.IntentFAQ)
	assert.Contains(t, got, "Kombucha adalah minuman fermentasi")
}

func TestCompose_FAQFallback(t *testing.T) {
	c := newComposer()

	got := c.Compose("zzz", entity.IntentFAQ)
	assert.Equal(t, "Silakan bertanya tentang harga, cara pembelian, cara konsumsi, atau efek samping kombucha.", got)
}

func TestCompose_Benefits(t *testing.T) {
	c := newComposer()

	got := c.Compose("apa saja kelebihan minuman ini", entity.IntentBenefits)
	assert.Contains(t, got, "Kombucha memiliki banyak manfaat:")
	assert.Contains(t, got, "Meningkatkan sistem imun")
	assert.Contains(t, got, "Meningkatkan metabolisme")

	// Keyword routing kicks in regardless of intent.
	got = c.Compose("khasiat kombucha itu apa", entity.IntentGeneral)
	assert.Contains(t, got, "Kombucha memiliki banyak manfaat:")
}

func TestCompose_BenefitDetailTemplate(t *testing.T) {
	c := newComposer()

	got := c.Compose("jelaskan soal melancarkan pencernaan", entity.IntentBenefits)
	assert.Contains(t, got, "Melancarkan pencernaan:")
	assert.Contains(t, got, "Asam organik")
}

func TestCompose_IngredientTemplate(t *testing.T) {
	c := newComposer()

	got := c.Compose("apa kandungan kombucha teh hijau?", entity.IntentGeneral)
	assert.Contains(t, got, "dibuat dari teh hijau organik")
}

func TestCompose_DefaultFallback(t *testing.T) {
	c := newComposer()

	got := c.Compose("qwerty", entity.IntentGeneral)
	assert.Contains(t, got, "Maaf, saya belum sepenuhnya memahami pertanyaan Anda.")
}
