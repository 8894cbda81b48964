// Package refs parses free-text scripture references and resolves them
// against a parsed verse index.
//
// A reference has the shape "<Book> <chapter>:<verse>[-<verse>]", e.g.
// "John 3:16" or "Rom 8:28-30". Book names may be multi-word ("Song of
// Solomon") or numeric-prefixed ("1 Corinthians"), and the whole
// reference may be wrapped in [[...]] link decoration.
package refs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Ref is a parsed scripture reference.
type Ref struct {
	// Book is the book name exactly as written in the reference.
	Book string `json:"book"`

	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`

	// Verse is the starting verse number.
	Verse int `json:"verse"`

	// VerseEnd is the ending verse number. It equals Verse when the
	// reference names a single verse.
	VerseEnd int `json:"verse_end"`
}

// refGrammar is the participle grammar for references.
// Examples: "Gen 1:1", "1 Corinthians 13:4-7", "Song of Solomon 2:1"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Book []string `parser:"@( Word | Int )+"`
	CV   string   `parser:"@CV"`
}

// refLexer tokenizes references. CV must come before Int so that
// "3:16" lexes as one chapter:verse token while a bare "1" (the numeric
// book prefix in "1 John") stays an Int.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "CV", Pattern: `[0-9]+:[0-9]+(-[0-9]+)?`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[A-Za-z][A-Za-z.']*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// decorationReplacer strips wiki-link bracket decoration around a
// reference, e.g. "[[Gen 1:1]]" -> "Gen 1:1".
var decorationReplacer = strings.NewReplacer("[", "", "]", "")

// ParseRef parses a free-text reference string. Link decoration is
// stripped before parsing. Returns an error when the string does not
// match the reference grammar; callers that probe arbitrary text for
// references should treat that error as "not a reference".
func ParseRef(s string) (*Ref, error) {
	s = strings.TrimSpace(decorationReplacer.Replace(s))
	if s == "" {
		return nil, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	ref := &Ref{Book: strings.Join(parsed.Book, " ")}

	cv := parsed.CV
	rangeEnd := 0
	if i := strings.IndexByte(cv, '-'); i >= 0 {
		rangeEnd, err = strconv.Atoi(cv[i+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid verse range in %q: %w", s, err)
		}
		cv = cv[:i]
	}

	colon := strings.IndexByte(cv, ':')
	ref.Chapter, err = strconv.Atoi(cv[:colon])
	if err != nil {
		return nil, fmt.Errorf("invalid chapter in %q: %w", s, err)
	}
	ref.Verse, err = strconv.Atoi(cv[colon+1:])
	if err != nil {
		return nil, fmt.Errorf("invalid verse in %q: %w", s, err)
	}

	ref.VerseEnd = ref.Verse
	if rangeEnd > 0 {
		ref.VerseEnd = rangeEnd
	}

	return ref, nil
}

// IsRange returns true if the reference spans more than one verse.
func (r *Ref) IsRange() bool {
	return r.VerseEnd > r.Verse
}

// String renders the reference in canonical "Book C:V[-V]" form.
func (r *Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(r.Chapter))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(r.Verse))
	if r.IsRange() {
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(r.VerseEnd))
	}
	return sb.String()
}
