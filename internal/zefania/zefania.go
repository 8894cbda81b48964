// Package zefania converts Zefania-schema XML bibles into the
// plain-text document format the scripture parser consumes.
//
// Zefania XML nests BIBLEBOOK > CHAPTER > VERS elements with the book
// name, chapter number, and verse number carried as attributes.
package zefania

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var (
	bookExpr    = xpath.MustCompile("//BIBLEBOOK")
	chapterExpr = xpath.MustCompile("CHAPTER")
	verseExpr   = xpath.MustCompile("VERS")
)

// Detect reports whether data looks like a Zefania XML bible.
func Detect(data []byte) bool {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return xmlquery.FindOne(doc, "/XMLBIBLE") != nil
}

// Convert renders a Zefania XML bible as a plain-text scripture
// document (# book, ## Chapter N, verse lines). Books without a name
// attribute and verses without a number are skipped.
func Convert(data []byte) (string, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing XML: %w", err)
	}
	if xmlquery.FindOne(doc, "/XMLBIBLE") == nil {
		return "", fmt.Errorf("not a Zefania document: missing XMLBIBLE root")
	}

	var sb strings.Builder
	for _, book := range xmlquery.QuerySelectorAll(doc, bookExpr) {
		name := book.SelectAttr("bname")
		if name == "" {
			continue
		}
		sb.WriteString("# ")
		sb.WriteString(name)
		sb.WriteByte('\n')

		for _, chapter := range xmlquery.QuerySelectorAll(book, chapterExpr) {
			number := chapter.SelectAttr("cnumber")
			if number == "" {
				continue
			}
			sb.WriteString("## Chapter ")
			sb.WriteString(number)
			sb.WriteByte('\n')

			for _, verse := range xmlquery.QuerySelectorAll(chapter, verseExpr) {
				vnum := verse.SelectAttr("vnumber")
				text := strings.Join(strings.Fields(verse.InnerText()), " ")
				if vnum == "" || text == "" {
					continue
				}
				sb.WriteString(vnum)
				sb.WriteString(". ")
				sb.WriteString(text)
				sb.WriteByte('\n')
			}
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}
