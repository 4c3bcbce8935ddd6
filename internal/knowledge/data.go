package knowledge

// Build assembles the knowledge base: the legacy hard-coded maps kept for
// fallback plus the catalog built from the product data files.
func Build() *Base {
	return &Base{
		Products: []Product{
			{
				Name:        "Teh Hijau",
				Description: "Kombucha Teh Hijau kaya akan antioksidan dan membantu meningkatkan metabolisme. Memiliki rasa yang segar dan ringan.",
				Price:       25000,
				Benefits:    []string{"Tinggi antioksidan", "Meningkatkan metabolisme"},
				Ingredients: []string{"teh hijau organik", "gula tebu", "kultur SCOBY"},
			},
			{
				Name:        "Teh Hitam",
				Description: "Kombucha Teh Hitam memiliki rasa yang lebih kuat dan bold. Mengandung kafein alami dan probiotik yang baik untuk pencernaan.",
				Price:       25000,
				Benefits:    []string{"Kaya akan probiotik", "Melancarkan pencernaan"},
				Ingredients: []string{"teh hitam pilihan", "gula tebu", "kultur SCOBY"},
			},
			{
				Name:        "Bunga Telang",
				Description: "Kombucha Bunga Telang memiliki warna biru alami yang cantik dan kaya akan antosianin. Baik untuk kesehatan mata dan kulit.",
				Price:       35000,
				Benefits:    []string{"Tinggi antioksidan", "Menjaga kesehatan mata dan kulit"},
				Ingredients: []string{"bunga telang kering", "teh hijau", "gula tebu", "kultur SCOBY"},
			},
			{
				Name:        "Daun Kelor",
				Description: "Kombucha Daun Kelor kaya akan vitamin A, C, dan zat besi. Sangat baik untuk meningkatkan sistem imun.",
				Price:       35000,
				Benefits:    []string{"Meningkatkan sistem imun", "Kaya vitamin dan mineral"},
				Ingredients: []string{"daun kelor segar", "teh hijau", "gula tebu", "kultur SCOBY"},
			},
			{
				Name:        "Bunga Amarant",
				Description: "Kombucha Bunga Amarant memiliki kandungan protein tinggi dan antioksidan. Membantu menjaga kesehatan jantung.",
				Price:       40000,
				Benefits:    []string{"Menjaga kesehatan jantung", "Tinggi antioksidan"},
				Ingredients: []string{"bunga amarant", "teh hitam", "gula tebu", "kultur SCOBY"},
			},
			{
				Name:        "Kopi",
				Description: "Kombucha Kopi memberikan energi alami dengan kandungan probiotik. Kombinasi sempurna untuk para pecinta kopi.",
				Price:       45000,
				Benefits:    []string{"Memberikan energi alami", "Kaya akan probiotik"},
				Ingredients: []string{"kopi arabika", "gula aren", "kultur SCOBY"},
			},
		},
		Benefits: []Benefit{
			{Title: "Meningkatkan sistem imun", Detail: "Probiotik hasil fermentasi membantu menyeimbangkan bakteri baik di usus, tempat sebagian besar sistem imun bekerja."},
			{Title: "Melancarkan pencernaan", Detail: "Asam organik dan enzim alami dalam kombucha membantu proses pencernaan makanan sehari-hari."},
			{Title: "Kaya akan probiotik", Detail: "Setiap botol mengandung kultur hidup dari fermentasi SCOBY yang baik untuk kesehatan usus."},
			{Title: "Tinggi antioksidan", Detail: "Polifenol dari teh membantu menangkal radikal bebas dan menjaga sel tubuh."},
			{Title: "Membantu detoksifikasi", Detail: "Asam glukuronat hasil fermentasi membantu tubuh membuang zat sisa secara alami."},
			{Title: "Meningkatkan metabolisme", Detail: "Kandungan teh dan asam organik membantu tubuh membakar energi lebih efisien."},
		},
		LegacyProducts: []LegacyProduct{
			{Key: "teh hijau", Description: "Kombucha Teh Hijau kaya akan antioksidan dan membantu meningkatkan metabolisme. Memiliki rasa yang segar dan ringan."},
			{Key: "teh hitam", Description: "Kombucha Teh Hitam memiliki rasa yang lebih kuat dan bold. Mengandung kafein alami dan probiotik yang baik untuk pencernaan."},
			{Key: "bunga telang", Description: "Kombucha Bunga Telang memiliki warna biru alami yang cantik dan kaya akan antosianin. Baik untuk kesehatan mata dan kulit."},
			{Key: "daun kelor", Description: "Kombucha Daun Kelor kaya akan vitamin A, C, dan zat besi. Sangat baik untuk meningkatkan sistem imun."},
			{Key: "bunga amarant", Description: "Kombucha Bunga Amarant memiliki kandungan protein tinggi dan antioksidan. Membantu menjaga kesehatan jantung."},
			{Key: "kopi", Description: "Kombucha Kopi memberikan energi alami dengan kandungan probiotik. Kombinasi sempurna untuk para pecinta kopi."},
		},
		FAQ: []FAQEntry{
			{Question: "apa itu kombucha", Answer: "Kombucha adalah minuman fermentasi yang dibuat dari teh yang difermentasi dengan SCOBY (Symbiotic Culture of Bacteria and Yeast). Minuman ini kaya akan probiotik dan antioksidan."},
			{Question: "bagaimana cara minum", Answer: "Kombucha sebaiknya diminum 1-2 gelas per hari, idealnya 30 menit sebelum atau sesudah makan. Mulai dengan porsi kecil jika baru pertama kali mencoba."},
			{Question: "efek samping", Answer: "Kombucha umumnya aman dikonsumsi. Namun, beberapa orang mungkin mengalami gangguan pencernaan ringan di awal konsumsi. Mulai dengan porsi kecil."},
			{Question: "berapa harga", Answer: "Harga kombucha kami bervariasi mulai dari Rp 25.000 hingga Rp 45.000 per botol, tergantung varian dan ukuran."},
			{Question: "dimana beli", Answer: "Anda bisa membeli produk kami melalui website ini atau menghubungi customer service kami untuk informasi toko terdekat."},
		},
	}
}
