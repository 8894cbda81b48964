package scripture

import (
	"reflect"
	"strings"
	"testing"
)

const genesisDoc = `# Genesis
## Chapter 1
1. In the beginning God created the heavens and the earth.
2. Now the earth was formless and empty.
`

func TestParseBasicDocument(t *testing.T) {
	idx := Parse(genesisDoc)

	if got := idx.BookCount(); got != 1 {
		t.Fatalf("BookCount() = %d, want 1", got)
	}

	book, ok := idx.Book("genesis")
	if !ok {
		t.Fatal("Book(genesis) not found")
	}
	if book.Name != "Genesis" {
		t.Errorf("book.Name = %q, want %q", book.Name, "Genesis")
	}

	chapter, ok := book.Chapter(1)
	if !ok {
		t.Fatal("Chapter(1) not found")
	}

	v1, ok := chapter.Verse(1)
	if !ok {
		t.Fatal("Verse(1) not found")
	}
	if v1.Text != "In the beginning God created the heavens and the earth." {
		t.Errorf("verse 1 text = %q", v1.Text)
	}
	if v1.SourceLine != 2 {
		t.Errorf("verse 1 SourceLine = %d, want 2", v1.SourceLine)
	}

	v2, ok := chapter.Verse(2)
	if !ok {
		t.Fatal("Verse(2) not found")
	}
	if v2.SourceLine != 3 {
		t.Errorf("verse 2 SourceLine = %d, want 3", v2.SourceLine)
	}
}

func TestParseCaseInsensitiveBookKey(t *testing.T) {
	idx := Parse(genesisDoc)

	for _, name := range []string{"Genesis", "GENESIS", "genesis", "gEnEsIs"} {
		if _, ok := idx.Book(name); !ok {
			t.Errorf("Book(%q) not found, want found", name)
		}
	}
}

func TestParseSourceLinesWithNoise(t *testing.T) {
	doc := strings.Join([]string{
		"Some preface text",      // 0
		"",                       // 1
		"# Genesis",              // 2
		"commentary in between",  // 3
		"## Chapter 1",           // 4
		"",                       // 5
		"1. First verse.",        // 6
		"not a verse",            // 7
		"2. Second verse.",       // 8
	}, "\n")

	idx := Parse(doc)
	book, _ := idx.Book("genesis")
	chapter, ok := book.Chapter(1)
	if !ok {
		t.Fatal("Chapter(1) not found")
	}

	tests := []struct {
		verse    int
		wantLine int
	}{
		{1, 6},
		{2, 8},
	}
	for _, tt := range tests {
		v, ok := chapter.Verse(tt.verse)
		if !ok {
			t.Fatalf("Verse(%d) not found", tt.verse)
		}
		if v.SourceLine != tt.wantLine {
			t.Errorf("Verse(%d).SourceLine = %d, want %d", tt.verse, v.SourceLine, tt.wantLine)
		}
	}
}

func TestParseOrphanChapterIgnored(t *testing.T) {
	doc := "## Chapter 1\n1. Orphan verse.\n"
	idx := Parse(doc)

	if got := idx.BookCount(); got != 0 {
		t.Errorf("BookCount() = %d, want 0", got)
	}
}

func TestParseOrphanVerseIgnored(t *testing.T) {
	doc := "# Genesis\n1. Verse before any chapter.\n## Chapter 1\n2. Real verse.\n"
	idx := Parse(doc)

	book, _ := idx.Book("genesis")
	chapter, ok := book.Chapter(1)
	if !ok {
		t.Fatal("Chapter(1) not found")
	}
	if _, ok := chapter.Verse(1); ok {
		t.Error("orphan verse 1 was indexed, want dropped")
	}
	if _, ok := chapter.Verse(2); !ok {
		t.Error("verse 2 not found")
	}
}

func TestParseBookRedeclarationLastWins(t *testing.T) {
	doc := strings.Join([]string{
		"# Genesis",
		"## Chapter 1",
		"1. Old text.",
		"# Genesis",
		"## Chapter 1",
		"1. New text.",
	}, "\n")

	idx := Parse(doc)
	if got := idx.BookCount(); got != 1 {
		t.Fatalf("BookCount() = %d, want 1", got)
	}

	book, _ := idx.Book("genesis")
	chapter, _ := book.Chapter(1)
	v, ok := chapter.Verse(1)
	if !ok {
		t.Fatal("Verse(1) not found")
	}
	if v.Text != "New text." {
		t.Errorf("verse text = %q, want %q (last declaration wins)", v.Text, "New text.")
	}
}

func TestParseSparseVerses(t *testing.T) {
	doc := "# Job\n## Chapter 3\n1. One.\n5. Five.\n9. Nine.\n"
	idx := Parse(doc)

	book, _ := idx.Book("job")
	chapter, _ := book.Chapter(3)
	if got := chapter.VerseCount(); got != 3 {
		t.Errorf("VerseCount() = %d, want 3", got)
	}
	if _, ok := chapter.Verse(2); ok {
		t.Error("Verse(2) found, want missing")
	}
}

func TestParseMultipleBooks(t *testing.T) {
	doc := strings.Join([]string{
		"# Genesis",
		"## Chapter 1",
		"1. Beginning.",
		"# Exodus",
		"## Chapter 1",
		"1. These are the names.",
	}, "\n")

	idx := Parse(doc)
	books := idx.Books()
	if len(books) != 2 {
		t.Fatalf("len(Books()) = %d, want 2", len(books))
	}
	if books[0].Name != "Genesis" || books[1].Name != "Exodus" {
		t.Errorf("book order = [%s, %s], want [Genesis, Exodus]", books[0].Name, books[1].Name)
	}
}

func TestParseChapterHeadingVariants(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		want    bool
	}{
		{"standard", "## Chapter 3", true},
		{"trailing text", "## Chapter 3 The Fall", true},
		{"missing Chapter word", "## 3", false},
		{"level one heading", "# Chapter 3", false},
		{"level three heading", "### Chapter 3", false},
		{"lowercase chapter", "## chapter 3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "# Genesis\n" + tt.heading + "\n1. Text.\n"
			idx := Parse(doc)
			book, _ := idx.Book("genesis")
			_, ok := book.Chapter(3)
			if ok != tt.want {
				t.Errorf("Chapter(3) found = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	doc := strings.Join([]string{
		"# Genesis",
		"## Chapter 1",
		"1. One.",
		"2. Two.",
		"## Chapter 2",
		"1. Later.",
		"# Exodus",
		"## Chapter 1",
		"3. Three.",
	}, "\n")

	a := Parse(doc)
	b := Parse(doc)

	if !reflect.DeepEqual(a, b) {
		t.Error("Parse is not deterministic: two parses of the same document differ")
	}
}

func TestParseEmptyAndGarbage(t *testing.T) {
	for _, doc := range []string{"", "\n\n\n", "no markers at all\njust prose\n", "#no space after marker"} {
		idx := Parse(doc)
		if got := idx.BookCount(); got != 0 {
			t.Errorf("Parse(%q).BookCount() = %d, want 0", doc, got)
		}
	}
}

func TestChaptersAndVersesSorted(t *testing.T) {
	doc := strings.Join([]string{
		"# Genesis",
		"## Chapter 2",
		"3. Two-three.",
		"1. Two-one.",
		"## Chapter 1",
		"2. One-two.",
		"1. One-one.",
	}, "\n")

	idx := Parse(doc)
	book, _ := idx.Book("genesis")

	chapters := book.Chapters()
	if len(chapters) != 2 {
		t.Fatalf("len(Chapters()) = %d, want 2", len(chapters))
	}
	if chapters[0].Number != 1 || chapters[1].Number != 2 {
		t.Errorf("chapter order = [%d, %d], want [1, 2]", chapters[0].Number, chapters[1].Number)
	}

	verses := chapters[1].Verses()
	if len(verses) != 2 {
		t.Fatalf("len(Verses()) = %d, want 2", len(verses))
	}
	if verses[0].Number != 1 || verses[1].Number != 3 {
		t.Errorf("verse order = [%d, %d], want [1, 3]", verses[0].Number, verses[1].Number)
	}
}

func TestParseStats(t *testing.T) {
	doc := strings.Join([]string{
		"# Genesis",
		"## Chapter 1",
		"1. One.",
		"2. Two.",
		"## Chapter 2",
		"1. Later.",
		"# Exodus",
		"## Chapter 1",
		"3. Three.",
	}, "\n")

	got := Parse(doc).Stats()
	want := Stats{Books: 2, Chapters: 3, Verses: 4}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
