package zefania

import (
	"strings"
	"testing"

	"lectern/core/scripture"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<XMLBIBLE biblename="Test Bible">
  <BIBLEBOOK bnumber="1" bname="Genesis">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">In the beginning God created
        the heavens and the earth.</VERS>
      <VERS vnumber="2">Now the earth was formless and empty.</VERS>
    </CHAPTER>
    <CHAPTER cnumber="2">
      <VERS vnumber="1">Thus the heavens and the earth were completed.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
  <BIBLEBOOK bnumber="40" bname="Matthew">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">The book of the genealogy of Jesus Christ.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
</XMLBIBLE>
`

func TestDetect(t *testing.T) {
	if !Detect([]byte(sampleXML)) {
		t.Error("Detect(sample) = false, want true")
	}
	if Detect([]byte(`<osis><osisText/></osis>`)) {
		t.Error("Detect(osis) = true, want false")
	}
	if Detect([]byte(`not xml at all <<<`)) {
		t.Error("Detect(garbage) = true, want false")
	}
}

func TestConvert(t *testing.T) {
	doc, err := Convert([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	for _, want := range []string{
		"# Genesis\n",
		"## Chapter 1\n",
		"## Chapter 2\n",
		"# Matthew\n",
		"2. Now the earth was formless and empty.\n",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("converted document missing %q:\n%s", want, doc)
		}
	}

	// Multi-line verse text must be collapsed onto one line.
	if !strings.Contains(doc, "1. In the beginning God created the heavens and the earth.\n") {
		t.Errorf("verse text not normalized to a single line:\n%s", doc)
	}
}

func TestConvertRoundTripsThroughParser(t *testing.T) {
	doc, err := Convert([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	idx := scripture.Parse(doc)
	if got := idx.BookCount(); got != 2 {
		t.Fatalf("BookCount() = %d, want 2", got)
	}

	book, ok := idx.Book("genesis")
	if !ok {
		t.Fatal("Book(genesis) not found in converted document")
	}
	if got := book.ChapterCount(); got != 2 {
		t.Errorf("ChapterCount() = %d, want 2", got)
	}

	chapter, _ := book.Chapter(1)
	v, ok := chapter.Verse(2)
	if !ok {
		t.Fatal("Verse(2) not found")
	}
	if v.Text != "Now the earth was formless and empty." {
		t.Errorf("verse text = %q", v.Text)
	}
}

func TestConvertRejectsNonZefania(t *testing.T) {
	if _, err := Convert([]byte(`<osis><osisText/></osis>`)); err == nil {
		t.Error("Convert(osis) succeeded, want error")
	}
}
