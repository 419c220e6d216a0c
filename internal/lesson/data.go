package lesson

var defaultLessons = []Lesson{
	{
		ID:         "home-row",
		Title:      "Home Row",
		Category:   "Basics",
		Difficulty: Beginner,
		Language:   English,
		Content:    "asdf jkl; asdf jkl; asdf jkl; fjdk slal fjdk slal fjdk slal",
	},
	{
		ID:         "top-row",
		Title:      "Top Row",
		Category:   "Basics",
		Difficulty: Beginner,
		Language:   English,
		Content:    "qwer tyui qwer tyui qwer tyui rtyu qiwe rtyu qiwe rtyu qiwe",
	},
	{
		ID:         "bottom-row",
		Title:      "Bottom Row",
		Category:   "Basics",
		Difficulty: Beginner,
		Language:   English,
		Content:    "zxcv bnm, zxcv bnm, zxcv bnm, cvbn m,zx cvbn m,zx cvbn m,zx",
	},
	{
		ID:         "common-words",
		Title:      "Common Words",
		Category:   "Words",
		Difficulty: Intermediate,
		Language:   English,
		Content:    "the and that have this with from they will some what there when",
	},
	{
		ID:         "capitalization",
		Title:      "Capitalization",
		Category:   "Words",
		Difficulty: Intermediate,
		Language:   English,
		Content:    "The Quick Brown Fox Jumps Over The Lazy Dog. A Fast Black Dog.",
	},
	{
		ID:         "punctuation",
		Title:      "Punctuation",
		Category:   "Advanced",
		Difficulty: Advanced,
		Language:   English,
		Content:    "Hello, world! How are you? I'm fine, thank you. Let's go!",
	},
	{
		ID:         "numbers",
		Title:      "Numbers & Symbols",
		Category:   "Advanced",
		Difficulty: Advanced,
		Language:   English,
		Content:    "1234 5678 90!@ #$% ^&* () _+ -={}",
	},
	{
		ID:         "paragraph",
		Title:      "Paragraph Practice",
		Category:   "Advanced",
		Difficulty: Advanced,
		Language:   English,
		Content:    "The sun was setting behind the mountains, casting a golden glow over the valley. Birds were returning to their nests, singing their evening songs. It was a peaceful end to a busy day.",
	},
	{
		ID:         "speed-game",
		Title:      "Speed Game",
		Category:   "Games",
		Difficulty: Advanced,
		Language:   English,
		Content:    "Pack my box with five dozen liquor jugs. How vexingly quick daft zebras jump!",
	},
	{
		ID:         "hi-home-row",
		Title:      "Home Row",
		Category:   "Basics",
		Difficulty: Beginner,
		Language:   Hindi,
		Content:    "कत रप कत रप चट कत रप चट कर पर तर चर कर पर तर चर",
	},
	{
		ID:         "hi-matras",
		Title:      "Vowel Signs",
		Category:   "Basics",
		Difficulty: Beginner,
		Language:   Hindi,
		Content:    "का कि की कु कू के कै को कौ पा पि पी पु पू पे पै पो पौ",
	},
	{
		ID:         "hi-top-row",
		Title:      "Top Row",
		Category:   "Basics",
		Difficulty: Beginner,
		Language:   Hindi,
		Content:    "बह गद जड बह गद जड हग दज बग हज दब गह",
	},
	{
		ID:         "hi-common-words",
		Title:      "Common Words",
		Category:   "Words",
		Difficulty: Intermediate,
		Language:   Hindi,
		Content:    "है और का की के में से को पर यह एक हम तुम वह",
	},
	{
		ID:         "hi-sentences",
		Title:      "Sentences",
		Category:   "Advanced",
		Difficulty: Advanced,
		Language:   Hindi,
		Content:    "भारत एक विशाल देश है। यहाँ अनेक भाषाएँ बोली जाती हैं। हम सब मिलकर रहते हैं।",
	},
}

var defaultCatalog = MustCatalog(defaultLessons)

// Default returns the compiled-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
