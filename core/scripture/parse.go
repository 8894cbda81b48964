package scripture

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

var (
	bookPattern    = regexp.MustCompile(`^#\s+(\S.*)$`)
	chapterPattern = regexp.MustCompile(`^##\s+Chapter\s+(\d+)`)
	versePattern   = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
)

// Parse builds an Index from the full text of one scripture document.
//
// Parsing is best-effort and never fails: lines that match none of the
// three recognized patterns are skipped, as are chapter headings with no
// current book and verse lines with no current chapter. A malformed
// document therefore yields a smaller index, not an error. Re-declaring
// a book name replaces the earlier entry under that key (last wins).
func Parse(text string) *Index {
	idx := &Index{books: make(map[string]*Book)}

	var (
		book    *Book
		chapter *Chapter
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := -1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if m := bookPattern.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			book = &Book{Name: name, chapters: make(map[int]*Chapter)}
			chapter = nil
			key := strings.ToLower(name)
			if _, seen := idx.books[key]; !seen {
				idx.order = append(idx.order, key)
			}
			idx.books[key] = book
			continue
		}

		if m := chapterPattern.FindStringSubmatch(line); m != nil {
			if book == nil {
				continue // orphan chapter heading
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			chapter = &Chapter{Number: n, verses: make(map[int]Verse)}
			book.chapters[n] = chapter
			continue
		}

		if m := versePattern.FindStringSubmatch(line); m != nil {
			if chapter == nil {
				continue // orphan verse line
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			chapter.verses[n] = Verse{
				Number:     n,
				Text:       strings.TrimSpace(m[2]),
				SourceLine: lineNo,
			}
			continue
		}
	}

	return idx
}
