package scraper

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/Atsmon/seek-scraper/model"
	"github.com/Atsmon/seek-scraper/utils"
	"github.com/PuerkitoBio/goquery"
)

func (s *Scraper) scrapeChapter(url string) (*model.Chapter, error) {
	s.log.Infof("Scraping chapter from: %s", url)

	resp, err := utils.Request().Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("failed to get chapter: %v", resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %v", err)
	}

	return s.chapterFromDoc(url, doc)
}

func (s *Scraper) chapterFromDoc(url string, doc *goquery.Document) (*model.Chapter, error) {
	name, arc, err := parseIdentity(doc)
	if err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		URL:     url,
		Name:    name,
		Arc:     arc,
		PrevURL: navLink(doc, prevLabel),
		NextURL: navLink(doc, nextLabel),
	}

	s.log.Infof("Extracting content from %s", name)
	ext := s.extract(url, doc)
	chapter.ContentHTML = ext.HTML
	chapter.Text = ext.Text
	chapter.Images = ext.Images

	return chapter, nil
}

// parseIdentity reads the chapter name and arc label off the page
// title, e.g. "0.1.0 – Hack | SEEK" names chapter 0.1.O of arc Hack.
func parseIdentity(doc *goquery.Document) (name, arc string, err error) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	fields := strings.Fields(title)
	if len(fields) < 3 {
		return "", "", fmt.Errorf("page title %q does not name a chapter and arc", title)
	}

	name = strings.ToUpper(fields[0])
	// First arc Orion chapters are titled .0 instead of .O.
	if strings.HasSuffix(name, "0") {
		name = name[:len(name)-1] + "O"
	}

	return name, fields[2], nil
}

// navLink returns the href of the first anchor whose emphasized text
// is the label, or "" when the page has no such link.
func navLink(doc *goquery.Document, label string) string {
	href := ""
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if a.Find("strong").First().Text() == label {
			href = a.AttrOr("href", "")
			return false
		}
		return true
	})
	return href
}
