package dictionary

// fallbackWords is the embedded word list used when the remote dictionary
// cannot be fetched. Sampling draws from it without replacement, the same
// way as from the full dictionary.
var fallbackWords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "had",
	"her", "was", "one", "our", "out", "day", "get", "has", "him", "his",
	"how", "its", "may", "new", "now", "old", "see", "two", "way", "who",
	"boy", "did", "let", "put", "say", "she", "too", "use", "any", "eat",
	"got", "why", "yes", "yet", "end", "man", "men", "own", "run", "sat",
	"saw", "sea", "set", "sit", "sky", "sun", "try", "war", "win", "ask",
	"bad", "bed", "big", "box", "car", "cat", "dog", "eye", "far", "fun",
	"hit", "hot", "job", "leg", "lot", "low", "map", "mom", "net", "pay",
	"pet", "red", "son", "top", "able", "back", "best", "blue", "book", "call",
	"came", "care", "city", "cold", "come", "dark", "done", "down", "each", "easy",
	"fact", "fall", "fast", "feel", "find", "fire", "five", "food", "form", "free",
	"full", "game", "gave", "girl", "give", "good", "grow", "hair", "hand", "hard",
	"head", "hear", "help", "here", "high", "hold", "home", "hope", "hour", "idea",
	"into", "just", "keep", "kind", "king", "know", "land", "last", "late", "lead",
	"left", "less", "life", "like", "line", "list", "live", "long", "look", "lost",
	"love", "made", "make", "many", "mean", "meet", "mind", "miss", "move", "much",
	"must", "name", "near", "need", "next", "nice", "open", "part", "pass", "past",
	"pick", "plan", "play", "read", "real", "rest", "ride", "room", "rule", "safe",
	"same", "save", "seem", "send", "show", "side", "sign", "sing", "slow", "some",
	"song", "soon", "sort", "stay", "step", "stop", "sure", "take", "talk", "tell",
	"test", "than", "that", "them", "then", "they", "this", "time", "told", "took",
	"tree", "true", "turn", "used", "very", "wait", "walk", "wall", "want", "warm",
	"well", "went", "were", "what", "when", "where", "which", "while", "white", "will",
	"wind", "wish", "with", "word", "work", "year", "young", "about", "after", "again",
	"air", "along", "also", "always", "animal", "answer", "around", "away", "bag", "ball",
	"base", "bath", "bear", "been", "before", "began", "being", "below", "better", "bird",
	"black", "boat", "body", "both", "bring", "build", "busy", "buy", "card", "carry",
	"case", "change", "child", "close", "club", "could", "count", "cut", "die", "do",
	"door", "draw", "drop", "dry", "ear", "early", "earth", "even", "ever", "every",
	"face", "family", "farm", "father", "feet", "few", "field", "fine", "first", "fish",
	"fly", "foot", "found", "four", "friend", "from", "front", "glass", "go", "gold",
	"great", "green", "half", "have", "he", "house", "if", "in", "is", "it",
	"key", "learn", "letter", "light", "little", "me", "might", "mile", "more", "most",
	"mother", "my", "never", "night", "no", "number", "of", "off", "oh", "on",
	"once", "only", "or", "other", "over", "page", "paper", "party", "people", "place",
	"point", "right", "river", "road", "round", "said", "school", "seat", "ship", "short",
	"six", "sleep", "small", "snow", "so", "sound", "speak", "start", "state", "still",
	"story", "street", "table", "ten", "their", "there", "these", "thing", "think", "three",
	"to", "today", "under", "until", "up", "us", "watch", "water", "we", "week",
	"window", "world", "write",
}
