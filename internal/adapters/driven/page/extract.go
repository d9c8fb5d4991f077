package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/ims-cli/internal/core/domain"
)

// itemSelector picks the searchable elements inside a target.
const itemSelector = "tr, .card, .list-item"

// parse reads an HTML document.
func parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// extract returns the searchable elements of the first node matching target,
// in document order. Header rows (rows without data cells) are skipped.
func extract(doc *goquery.Document, target string) ([]domain.Element, error) {
	root := doc.Find(target).First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, target)
	}

	elements := []domain.Element{}
	root.Find(itemSelector).Each(func(_ int, item *goquery.Selection) {
		kind := kindOf(item)
		var cells []string
		if kind == domain.KindRow {
			if item.Find("td").Length() == 0 {
				return
			}
			item.Children().Filter("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, textOf(cell))
			})
		}

		index := len(elements)
		id, ok := item.Attr("id")
		if !ok || id == "" {
			id = fmt.Sprintf("%s#%d", target, index)
		}

		elements = append(elements, domain.Element{
			ID:    id,
			Kind:  kind,
			Text:  textOf(item),
			Index: index,
			Cells: cells,
		})
	})
	return elements, nil
}

func kindOf(item *goquery.Selection) domain.ElementKind {
	switch {
	case goquery.NodeName(item) == "tr":
		return domain.KindRow
	case item.HasClass("card"):
		return domain.KindCard
	default:
		return domain.KindListItem
	}
}

// boundaries are the elements whose edges separate words. Inline markup
// such as <b> or <span> joins its text to the surrounding run.
var boundaries = map[string]bool{
	"td": true, "th": true, "tr": true, "li": true, "p": true, "div": true,
	"br": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "ul": true, "ol": true, "table": true, "section": true,
}

// textOf returns the text content of sel with whitespace collapsed. Text
// runs are only split at element boundaries, so "<td>a</td><td>b</td>"
// reads "a b" while "<b>Wid</b>get" stays "Widget".
func textOf(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, node *goquery.Selection) {
			name := goquery.NodeName(node)
			switch {
			case name == "#text":
				b.WriteString(node.Text())
			case name == "script", name == "style", name == "#comment":
			case boundaries[name]:
				b.WriteByte(' ')
				walk(node)
				b.WriteByte(' ')
			default:
				walk(node)
			}
		})
	}
	walk(sel)
	return strings.Join(strings.Fields(b.String()), " ")
}
