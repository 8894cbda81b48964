package refs

import (
	"fmt"
	"strings"

	"lectern/core/scripture"
)

// Resolver answers reference queries against one parsed Index. It holds
// no state beyond the index pointer and is safe for concurrent use.
type Resolver struct {
	idx *scripture.Index
}

// NewResolver returns a Resolver bound to the given index.
func NewResolver(idx *scripture.Index) *Resolver {
	return &Resolver{idx: idx}
}

// VerseText resolves a reference to formatted verse text:
//
//	**Genesis 1:1-2**
//
//	<sup>1</sup> In the beginning... <sup>2</sup> Now the earth...
//
// Verses absent from the chapter are skipped, not errors. Returns
// ok=false when the reference is malformed or names an unknown book or
// chapter; the resolver is probed with arbitrary text, so none of those
// conditions raise an error.
func (r *Resolver) VerseText(reference string) (string, bool) {
	ref, book, chapter, ok := r.resolveChapter(reference)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(book.Name)
	sb.WriteByte(' ')
	if ref.IsRange() {
		fmt.Fprintf(&sb, "%d:%d-%d", ref.Chapter, ref.Verse, ref.VerseEnd)
	} else {
		fmt.Fprintf(&sb, "%d:%d", ref.Chapter, ref.Verse)
	}
	sb.WriteString("**\n\n")

	first := true
	for n := ref.Verse; n <= ref.VerseEnd; n++ {
		v, ok := chapter.Verse(n)
		if !ok {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "<sup>%d</sup> %s", v.Number, v.Text)
		first = false
	}

	return sb.String(), true
}

// SourceLine resolves a reference to the zero-based source line of its
// first verse, for jump-to-source navigation. Returns ok=false when the
// reference is malformed or the book, chapter, or verse is unknown.
func (r *Resolver) SourceLine(reference string) (int, bool) {
	ref, _, chapter, ok := r.resolveChapter(reference)
	if !ok {
		return 0, false
	}
	v, ok := chapter.Verse(ref.Verse)
	if !ok {
		return 0, false
	}
	return v.SourceLine, true
}

// resolveChapter parses the reference, normalizes the book name through
// the alias table, and walks the index down to the chapter.
func (r *Resolver) resolveChapter(reference string) (*Ref, *scripture.Book, *scripture.Chapter, bool) {
	ref, err := ParseRef(reference)
	if err != nil {
		return nil, nil, nil, false
	}
	book, ok := r.idx.Book(NormalizeBook(ref.Book))
	if !ok {
		return nil, nil, nil, false
	}
	chapter, ok := book.Chapter(ref.Chapter)
	if !ok {
		return nil, nil, nil, false
	}
	return ref, book, chapter, true
}
