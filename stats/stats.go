// Package stats computes and prints the word count report for a
// scraped book.
package stats

import (
	"math"

	"github.com/Atsmon/seek-scraper/model"
)

type ChapterStats struct {
	Name  string
	Words int
	// Percent is the chapter's share of its arc.
	Percent float64
}

type ArcStats struct {
	Name  string
	Words int
	// Percent is the arc's share of the book.
	Percent  float64
	Chapters []ChapterStats
}

type BookStats struct {
	TotalWords         int
	Arcs               []ArcStats
	AvgChaptersPerArc  float64
	AvgWordsPerChapter float64
	AvgWordsPerArc     float64
}

// Collect aggregates word counts over the book. Percentages are
// rounded to one decimal place, and every ratio with a zero
// denominator comes out as zero.
func Collect(book *model.Book) BookStats {
	stats := BookStats{TotalWords: book.WordCount()}

	chapterCount := 0
	for _, arc := range book.Arcs() {
		arcWords := arc.WordCount()
		arcStats := ArcStats{
			Name:    arc.Name,
			Words:   arcWords,
			Percent: percent(arcWords, stats.TotalWords),
		}
		for _, chapter := range arc.Chapters() {
			chapterCount++
			words := chapter.WordCount()
			arcStats.Chapters = append(arcStats.Chapters, ChapterStats{
				Name:    chapter.Name,
				Words:   words,
				Percent: percent(words, arcWords),
			})
		}
		stats.Arcs = append(stats.Arcs, arcStats)
	}

	if arcs := len(stats.Arcs); arcs > 0 {
		stats.AvgChaptersPerArc = float64(chapterCount) / float64(arcs)
		stats.AvgWordsPerArc = float64(stats.TotalWords) / float64(arcs)
	}
	if chapterCount > 0 {
		stats.AvgWordsPerChapter = float64(stats.TotalWords) / float64(chapterCount)
	}
	return stats
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
