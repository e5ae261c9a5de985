package scraper

import (
	"strings"

	"github.com/Atsmon/seek-scraper/utils"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	prevLabel = "Previous Chapter"
	nextLabel = "Next Chapter"
)

// extraction is the usable part of one chapter page: the sanitized
// content fragment, its plain text, and the image URLs it references.
type extraction struct {
	HTML   string
	Text   string
	Images []string
}

// extract cuts the chapter body out of the page chrome. Every chapter
// sits between navigation paragraphs: content runs from the element
// after the first "Next Chapter" marker to the element before the
// closing marker, which is "Next Chapter" again on the first chapter
// and "Previous Chapter" on every other page. If either marker is
// missing the whole container is kept as a degraded fallback.
func (s *Scraper) extract(url string, doc *goquery.Document) extraction {
	container := doc.Find("div.entry-content").First()
	if container.Length() == 0 {
		s.log.Warnf("No content div found in %s", url)
		return extraction{}
	}

	wrapperDoc, _ := goquery.NewDocumentFromReader(strings.NewReader(`<div class="chapter-content"></div>`))
	wrapper := wrapperDoc.Find("div.chapter-content").First()

	elements := container.Find("p, div, figure")
	n := elements.Length()

	isFirst := true
	for i := 0; i < n && i < 3; i++ {
		if hasMarker(elements.Eq(i), prevLabel) {
			isFirst = false
			break
		}
	}
	s.log.Debugf("Is first chapter: %v", isFirst)

	endLabel := prevLabel
	if isFirst {
		endLabel = nextLabel
	}

	start, end := -1, -1
	for i := 0; i < n; i++ {
		if hasMarker(elements.Eq(i), nextLabel) {
			s.log.Debugf("Found start marker at %d", i)
			start = i
			break
		}
	}
	if start != -1 {
		for i := start + 1; i < n; i++ {
			if hasMarker(elements.Eq(i), endLabel) {
				end = i - 1
				s.log.Debugf("Found %q at %d, content ends at %d", endLabel, i, end)
				break
			}
		}
	}

	var images []string

	// Cover images sit above the navigation header. Rescue any
	// image-bearing element from before the start marker.
	if start != -1 {
		for i := 0; i < start; i++ {
			el := elements.Eq(i)
			if el.Find("img").Length() == 0 {
				continue
			}
			sanitizeNavLinks(el)
			wrapper.AppendSelection(el)
			images = collectImages(el, images)
		}
	}

	lo, hi := 0, n
	if start == -1 || end == -1 {
		s.log.Warnf("Could not find content markers in %s, copying all content", url)
	} else {
		lo, hi = start+1, end+1
	}

	var text strings.Builder
	for i := lo; i < hi; i++ {
		el := elements.Eq(i)
		sanitizeNavLinks(el)
		// Reader apps override inline styles unless they insist.
		if style, ok := el.Attr("style"); ok {
			el.SetAttr("style", style+" !important")
		}
		wrapper.AppendSelection(el)
		images = collectImages(el, images)
		if goquery.NodeName(el) == "p" {
			text.WriteString("\n\n")
			text.WriteString(el.Text())
		}
	}

	htmlOut, _ := goquery.OuterHtml(wrapper)
	return extraction{
		HTML:   htmlOut,
		Text:   strings.TrimSpace(text.String()),
		Images: images,
	}
}

// hasMarker reports whether the element holds emphasized text exactly
// equal to the label.
func hasMarker(el *goquery.Selection, label string) bool {
	found := false
	el.Find("strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Text() == label {
			found = true
			return false
		}
		return true
	})
	return found
}

// sanitizeNavLinks strips navigation residue from a kept element:
// unwraps navigation anchors and bare image links, then removes
// leftover navigation strong tags and text nodes.
func sanitizeNavLinks(el *goquery.Selection) *goquery.Selection {
	el.Find("a").Each(func(_ int, a *goquery.Selection) {
		if hasMarker(a, prevLabel) || hasMarker(a, nextLabel) {
			unwrap(a)
			return
		}
		if a.Find("img").Length() > 0 && strings.TrimSpace(a.Text()) == "" {
			unwrap(a)
		}
	})

	el.Find("strong").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t == prevLabel || t == nextLabel {
			s.Remove()
		}
	})

	for _, node := range el.Nodes {
		removeNavText(node)
	}

	return el
}

// unwrap replaces each node with its children.
func unwrap(s *goquery.Selection) {
	for _, n := range s.Nodes {
		parent := n.Parent
		if parent == nil {
			continue
		}
		for n.FirstChild != nil {
			child := n.FirstChild
			n.RemoveChild(child)
			parent.InsertBefore(child, n)
		}
		parent.RemoveChild(n)
	}
}

// removeNavText drops bare text nodes that spell a navigation label.
func removeNavText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			t := strings.TrimSpace(c.Data)
			if t == prevLabel || t == nextLabel {
				n.RemoveChild(c)
			}
		} else {
			removeNavText(c)
		}
		c = next
	}
}

// collectImages appends the element's image URLs, query strings
// stripped, skipping empties and URLs already collected.
func collectImages(el *goquery.Selection, images []string) []string {
	el.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := utils.StripQuery(img.AttrOr("src", ""))
		if src == "" {
			return
		}
		for _, seen := range images {
			if seen == src {
				return
			}
		}
		images = append(images, src)
	})
	return images
}
