// Package scraper walks the serial's chapter chain and extracts each
// installment's content from the surrounding page chrome.
package scraper

import (
	"fmt"
	"time"

	"github.com/Atsmon/seek-scraper/config"
	"github.com/Atsmon/seek-scraper/model"
	"go.uber.org/zap"
)

type Scraper struct {
	log   *zap.SugaredLogger
	seed  string
	delay time.Duration
}

func New(log *zap.SugaredLogger, cfg config.Scrape) *Scraper {
	return &Scraper{
		log:   log,
		seed:  cfg.SeedURL,
		delay: cfg.Delay(),
	}
}

// Scrape follows next links from the seed until a chapter has none,
// filing chapters into arcs in discovery order. A next link that
// points back at an already-visited URL means the chain is corrupt
// and aborts the run.
func (s *Scraper) Scrape() (*model.Book, error) {
	book := model.NewBook()
	visited := make(map[string]struct{})

	url := s.seed
	for {
		if _, ok := visited[url]; ok {
			return nil, fmt.Errorf("chapter chain loops back to %s", url)
		}
		visited[url] = struct{}{}

		chapter, err := s.scrapeChapter(url)
		if err != nil {
			return nil, fmt.Errorf("failed to scrape %s: %v", url, err)
		}
		book.Add(chapter)

		if chapter.NextURL == "" {
			break
		}
		url = chapter.NextURL

		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}

	s.log.Infof("Scraped %d chapters in %d arcs, %d words total",
		book.ChapterCount(), len(book.Arcs()), book.WordCount())

	return book, nil
}
