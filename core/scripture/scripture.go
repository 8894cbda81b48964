// Package scripture parses plain-text scripture documents into an
// addressable verse index.
//
// The input format is line-oriented:
//
//	# <Book Name>
//	## Chapter <N>
//	<M>. <verse text>
//
// Anything that does not match one of those three shapes is skipped.
package scripture

import (
	"sort"
	"strings"
)

// Verse is a single verse within a chapter.
type Verse struct {
	// Number is the verse number, unique within its chapter.
	Number int `json:"number"`

	// Text is the trimmed verse text.
	Text string `json:"text"`

	// SourceLine is the zero-based line offset of the verse's defining
	// line in the original document, used for jump-to-source navigation.
	SourceLine int `json:"source_line"`
}

// Chapter holds the verses of one chapter. Verse numbers need not be
// contiguous; a missing number simply fails lookup.
type Chapter struct {
	Number int
	verses map[int]Verse
}

// Verse returns the verse with the given number.
func (c *Chapter) Verse(n int) (Verse, bool) {
	v, ok := c.verses[n]
	return v, ok
}

// VerseCount returns the number of verses in the chapter.
func (c *Chapter) VerseCount() int {
	return len(c.verses)
}

// Verses returns the chapter's verses sorted by verse number.
func (c *Chapter) Verses() []Verse {
	out := make([]Verse, 0, len(c.verses))
	for _, v := range c.verses {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Book holds the chapters of one book. Name preserves the casing of the
// book heading; the owning Index keys the book by the lowercased name.
type Book struct {
	Name     string
	chapters map[int]*Chapter
}

// Chapter returns the chapter with the given number.
func (b *Book) Chapter(n int) (*Chapter, bool) {
	c, ok := b.chapters[n]
	return c, ok
}

// ChapterCount returns the number of chapters in the book.
func (b *Book) ChapterCount() int {
	return len(b.chapters)
}

// Chapters returns the book's chapters sorted by chapter number.
func (b *Book) Chapters() []*Chapter {
	out := make([]*Chapter, 0, len(b.chapters))
	for _, c := range b.chapters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Index is the complete parsed representation of one scripture document.
// An Index is built once by Parse and never mutated afterwards, so
// concurrent lookups against the same Index are safe.
type Index struct {
	books map[string]*Book
	order []string // book keys in first-seen document order
}

// Book returns the book stored under the given name. Lookup is
// case-insensitive: the name is lowercased to form the index key.
func (x *Index) Book(name string) (*Book, bool) {
	b, ok := x.books[strings.ToLower(name)]
	return b, ok
}

// Books returns the books in document order.
func (x *Index) Books() []*Book {
	out := make([]*Book, 0, len(x.order))
	for _, key := range x.order {
		out = append(out, x.books[key])
	}
	return out
}

// BookCount returns the number of books in the index.
func (x *Index) BookCount() int {
	return len(x.books)
}

// Stats summarizes the contents of an Index.
type Stats struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
}

// Stats walks the index and counts books, chapters, and verses.
func (x *Index) Stats() Stats {
	s := Stats{Books: len(x.books)}
	for _, b := range x.books {
		s.Chapters += len(b.chapters)
		for _, c := range b.chapters {
			s.Verses += len(c.verses)
		}
	}
	return s
}
