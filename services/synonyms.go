package services

// SynonymEntry maps one canonical category label to the natural-language
// surface forms that imply it.
type SynonymEntry struct {
	Label    string
	Synonyms []string
}

// SynonymTable is an ordered list of entries. Order matters: the matcher
// resolves ties by first entry encountered, so lookups are reproducible.
type SynonymTable []SynonymEntry

var GenreSynonyms = SynonymTable{
	{"romance", []string{"romance", "romantic", "love", "rom-com", "relationship", "heartwarming"}},
	{"action", []string{"action", "adventure", "fight", "combat", "explosions", "chase", "martial arts"}},
	{"comedy", []string{"comedy", "funny", "humor", "satire", "laugh", "parody", "slapstick"}},
	{"horror", []string{"horror", "scary", "thriller", "fear", "ghost", "haunted", "supernatural"}},
	{"sci-fi", []string{"sci-fi", "science fiction", "space", "alien", "future", "technology", "time travel", "robot"}},
	{"fantasy", []string{"fantasy", "magic", "mythical", "dragons", "sorcery", "medieval", "epic quest"}},
	{"drama", []string{"drama", "emotional", "realistic", "life story", "tragedy", "family drama", "serious tone", "slice of life"}},
	{"mystery", []string{"mystery", "detective", "investigation", "whodunit", "suspense", "unsolved", "clues"}},
	{"crime", []string{"crime", "mafia", "heist", "gangster", "law", "courtroom", "underworld", "criminal"}},
	{"animation", []string{"animation", "animated", "cartoon", "pixar", "disney", "anime", "family-friendly"}},
	{"documentary", []string{"documentary", "true story", "non-fiction", "biography", "docuseries", "real events"}},
	{"biography", []string{"biography", "based on true story", "real life", "famous person", "historical figure"}},
	{"war", []string{"war", "military", "battle", "soldier", "army", "conflict", "historical war"}},
	{"history", []string{"history", "historical", "period drama", "ancient", "past events", "timepiece"}},
	{"family", []string{"family", "kids", "wholesome", "all ages", "lighthearted", "feel-good"}},
	{"musical", []string{"musical", "singing", "dancing", "music", "performance", "broadway", "songs"}},
	{"sports", []string{"sports", "athlete", "competition", "football", "basketball", "boxing", "team", "coach"}},
	{"western", []string{"western", "cowboy", "wild west", "gunslinger", "sheriff", "desert"}},
	{"spy", []string{"spy", "espionage", "secret agent", "cia", "mi6", "undercover", "covert"}},
	{"post-apocalyptic", []string{"post-apocalyptic", "wasteland", "end of the world", "dystopian", "collapse", "survival"}},
	{"psychological", []string{"psychological", "mind-bending", "twist", "mental", "inner conflict", "inception-like"}},
	{"superhero", []string{"superhero", "marvel", "dc", "powers", "hero", "villain", "mutant", "saving the world"}},
	{"zombie", []string{"zombie", "undead", "infected", "outbreak", "virus", "walking dead", "apocalypse"}},
	{"samurai", []string{"samurai", "ronin", "katana", "feudal japan", "bushido", "shogun", "edo era"}},
}

var OriginSynonyms = SynonymTable{
	{"korean", []string{"korean", "south korea", "k-drama", "k-movie", "film korea"}},
	{"japanese", []string{"japanese", "japan", "j-drama", "japanese film", "film jepang"}},
	{"indonesian", []string{"indonesian", "indonesia", "indo", "local film", "film indonesia"}},
	{"french", []string{"french", "france", "film prancis"}},
	{"indian", []string{"indian", "bollywood", "india", "hindi film", "tamil", "telugu", "film india"}},
	{"thai", []string{"thai", "thailand", "film thailand", "thai drama", "thai movie"}},
	{"chinese", []string{"chinese", "china", "film china", "chinese movie", "c-drama"}},
	{"british", []string{"british", "uk", "united kingdom", "film inggris", "british film"}},
	{"american", []string{"american", "usa", "united states", "hollywood", "film amerika"}},
	{"spanish", []string{"spanish", "spain", "film spanyol", "spanish movie"}},
	{"german", []string{"german", "germany", "film jerman"}},
	{"turkish", []string{"turkish", "turkey", "film turki", "turkish drama"}},
	{"iranian", []string{"iranian", "iran", "film iran"}},
	{"russian", []string{"russian", "russia", "film rusia"}},
	{"philippine", []string{"philippine", "filipino", "philippines", "film filipina"}},
}

var ThemeSynonyms = SynonymTable{
	{"mind-bending", []string{
		"mind-bending", "thought-provoking", "complex", "inception", "makes you think",
		"twisted plot", "puzzle", "psychological twist", "confusing at first",
	}},
	{"emotional", []string{
		"emotional", "heartbreaking", "tearjerker", "sad", "touching", "soul-crushing",
		"makes you cry", "melancholy", "heartfelt", "tragic",
	}},
	{"inspirational", []string{
		"inspiring", "motivational", "life-changing", "uplifting", "powerful message",
		"based on true events", "overcoming odds", "heroic journey", "resilience",
	}},
	{"moral", []string{
		"moral lesson", "philosophical", "deep message", "values", "ethical dilemma",
		"teaches something", "social commentary", "life meaning", "reflective",
	}},
	{"psychological", []string{
		"psychological", "mental", "manipulative", "dark thoughts", "dual personality",
		"internal conflict", "identity crisis", "emotional breakdown", "mind games",
	}},
	{"twist", []string{
		"plot twist", "unexpected ending", "shocking", "surprising turn", "unpredictable",
		"revealing twist", "big reveal", "twisted", "double meaning",
	}},
}
