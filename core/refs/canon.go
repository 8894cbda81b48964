package refs

import (
	"sort"
	"strings"
)

// CanonicalBooks lists the 66 book display names in canonical order.
// These names double as the parser's index keys once lowercased, so
// alias targets must match them exactly.
var CanonicalBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "1 Chronicles", "2 Chronicles", "Ezra",
	"Nehemiah", "Esther", "Job", "Psalms", "Proverbs",
	"Ecclesiastes", "Song of Solomon", "Isaiah", "Jeremiah", "Lamentations",
	"Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk",
	"Zephaniah", "Haggai", "Zechariah", "Malachi",
	"Matthew", "Mark", "Luke", "John", "Acts",
	"Romans", "1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians", "1 Timothy",
	"2 Timothy", "Titus", "Philemon", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John",
	"Jude", "Revelation",
}

// bookAliases maps lowercase abbreviations to canonical display names.
// Many-to-one: several abbreviations may target one book. Numeric
// prefixes keep the numeral and following space on both sides.
var bookAliases = map[string]string{
	"gen": "Genesis", "ge": "Genesis", "gn": "Genesis",
	"exod": "Exodus", "exo": "Exodus", "ex": "Exodus",
	"lev": "Leviticus", "le": "Leviticus", "lv": "Leviticus",
	"num": "Numbers", "nu": "Numbers", "nm": "Numbers", "nb": "Numbers",
	"deut": "Deuteronomy", "deu": "Deuteronomy", "dt": "Deuteronomy",
	"josh": "Joshua", "jos": "Joshua", "jsh": "Joshua",
	"judg": "Judges", "jdg": "Judges", "jg": "Judges", "jdgs": "Judges",
	"rth": "Ruth", "ru": "Ruth",
	"1 sam": "1 Samuel", "1 sm": "1 Samuel", "1 sa": "1 Samuel",
	"2 sam": "2 Samuel", "2 sm": "2 Samuel", "2 sa": "2 Samuel",
	"1 kgs": "1 Kings", "1 ki": "1 Kings",
	"2 kgs": "2 Kings", "2 ki": "2 Kings",
	"1 chr": "1 Chronicles", "1 chron": "1 Chronicles", "1 ch": "1 Chronicles",
	"2 chr": "2 Chronicles", "2 chron": "2 Chronicles", "2 ch": "2 Chronicles",
	"ezr": "Ezra",
	"neh": "Nehemiah", "ne": "Nehemiah",
	"esth": "Esther", "est": "Esther", "es": "Esther",
	"jb": "Job",
	"ps": "Psalms", "psalm": "Psalms", "psa": "Psalms", "psm": "Psalms", "pss": "Psalms",
	"prov": "Proverbs", "pro": "Proverbs", "prv": "Proverbs", "pr": "Proverbs",
	"eccles": "Ecclesiastes", "eccl": "Ecclesiastes", "ecc": "Ecclesiastes", "ec": "Ecclesiastes", "qoh": "Ecclesiastes",
	"song": "Song of Solomon", "song of songs": "Song of Solomon", "sos": "Song of Solomon", "so": "Song of Solomon", "canticles": "Song of Solomon",
	"isa": "Isaiah", "is": "Isaiah",
	"jer": "Jeremiah", "je": "Jeremiah", "jr": "Jeremiah",
	"lam": "Lamentations", "la": "Lamentations",
	"ezek": "Ezekiel", "eze": "Ezekiel", "ezk": "Ezekiel",
	"dan": "Daniel", "da": "Daniel", "dn": "Daniel",
	"hos": "Hosea", "ho": "Hosea",
	"jl": "Joel",
	"am": "Amos",
	"obad": "Obadiah", "ob": "Obadiah",
	"jnh": "Jonah", "jon": "Jonah",
	"mic": "Micah", "mc": "Micah",
	"nah": "Nahum", "na": "Nahum",
	"hab": "Habakkuk", "hb": "Habakkuk",
	"zeph": "Zephaniah", "zep": "Zephaniah", "zp": "Zephaniah",
	"hag": "Haggai", "hg": "Haggai",
	"zech": "Zechariah", "zec": "Zechariah", "zc": "Zechariah",
	"mal": "Malachi", "ml": "Malachi",
	"matt": "Matthew", "mat": "Matthew", "mt": "Matthew",
	"mrk": "Mark", "mk": "Mark", "mr": "Mark",
	"luk": "Luke", "lk": "Luke",
	"jn": "John", "jhn": "John",
	"act": "Acts", "ac": "Acts",
	"rom": "Romans", "ro": "Romans", "rm": "Romans",
	"1 cor": "1 Corinthians", "1 co": "1 Corinthians",
	"2 cor": "2 Corinthians", "2 co": "2 Corinthians",
	"gal": "Galatians", "ga": "Galatians",
	"eph": "Ephesians", "ephes": "Ephesians",
	"phil": "Philippians", "php": "Philippians", "pp": "Philippians",
	"col": "Colossians",
	"1 thess": "1 Thessalonians", "1 thes": "1 Thessalonians", "1 th": "1 Thessalonians",
	"2 thess": "2 Thessalonians", "2 thes": "2 Thessalonians", "2 th": "2 Thessalonians",
	"1 tim": "1 Timothy", "1 ti": "1 Timothy",
	"2 tim": "2 Timothy", "2 ti": "2 Timothy",
	"tit": "Titus", "ti": "Titus",
	"philem": "Philemon", "phm": "Philemon", "pm": "Philemon",
	"heb": "Hebrews",
	"jas": "James", "jm": "James",
	"1 pet": "1 Peter", "1 pe": "1 Peter", "1 pt": "1 Peter",
	"2 pet": "2 Peter", "2 pe": "2 Peter", "2 pt": "2 Peter",
	"1 jn": "1 John", "1 jhn": "1 John", "1 jo": "1 John",
	"2 jn": "2 John", "2 jhn": "2 John", "2 jo": "2 John",
	"3 jn": "3 John", "3 jhn": "3 John", "3 jo": "3 John",
	"jud": "Jude", "jd": "Jude",
	"rev": "Revelation", "re": "Revelation", "apoc": "Revelation",
}

// CanonicalName returns the canonical display name for a lowercase
// alias key.
func CanonicalName(alias string) (string, bool) {
	name, ok := bookAliases[alias]
	return name, ok
}

// NormalizeBook maps a free-text book name to the lowercase key used by
// the verse index. The name is lowercased; if the result is a known
// alias it is replaced by the alias's canonical name, lowercased.
func NormalizeBook(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := bookAliases[key]; ok {
		return strings.ToLower(canonical)
	}
	return key
}

// Aliases returns all alias keys in sorted order.
func Aliases() []string {
	keys := make([]string, 0, len(bookAliases))
	for k := range bookAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
