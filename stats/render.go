package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	headerColor  = text.Colors{text.Bold, text.FgCyan}
	totalColor   = text.Colors{text.Bold, text.FgGreen}
	arcColor     = text.Colors{text.Bold, text.FgYellow}
	chapterColor = text.Colors{text.FgWhite}
	percentColor = text.Colors{text.FgCyan}
)

const ruleWidth = 60

// Render prints the word count report: per-arc breakdowns in reading
// order, then a summary with arcs sorted by size.
func Render(w io.Writer, s BookStats) {
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
	doubleRule := strings.Repeat("=", ruleWidth)
	singleRule := strings.Repeat("-", ruleWidth)

	line("\n%s", doubleRule)
	line("%s", headerColor.Sprint("SEEK Word Count Analysis"))
	line("%s", doubleRule)

	line("\n%s", totalColor.Sprintf("Total Word Count: %s", humanize.Comma(int64(s.TotalWords))))
	line("%s", singleRule)

	for _, arc := range s.Arcs {
		line("\n%s", arcColor.Sprintf("Arc: %s", arc.Name))
		line("   ├─ Word Count: %s (%s)", humanize.Comma(int64(arc.Words)), percentColor.Sprintf("%.1f%%", arc.Percent))
		line("   └─ Chapters:")

		maxLen := 0
		for _, chapter := range arc.Chapters {
			if len(chapter.Name) > maxLen {
				maxLen = len(chapter.Name)
			}
		}
		for i, chapter := range arc.Chapters {
			pipe := "├─"
			if i == len(arc.Chapters)-1 {
				pipe = "└─"
			}
			padded := fmt.Sprintf("%-*s", maxLen, chapter.Name)
			line("      %s %s : %s (%s)", pipe, chapterColor.Sprint(padded), humanize.Comma(int64(chapter.Words)), percentColor.Sprintf("%.1f%%", chapter.Percent))
		}
	}

	line("\n%s", doubleRule)
	line("%s", headerColor.Sprint("Summary"))
	line("%s", singleRule)

	sorted := make([]ArcStats, len(s.Arcs))
	copy(sorted, s.Arcs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Words > sorted[j].Words })

	line("\n%s", arcColor.Sprint("Arc Statistics (sorted by word count):"))
	for i, arc := range sorted {
		pipe := "├─"
		if i == len(sorted)-1 {
			pipe = "└─"
		}
		line("   %s %s: %s words (%s)", pipe, arc.Name, humanize.Comma(int64(arc.Words)), percentColor.Sprintf("%.1f%%", arc.Percent))
	}

	line("\n%s", headerColor.Sprint("Average Statistics:"))
	line("   ├─ Average chapters per arc: %.1f", s.AvgChaptersPerArc)
	line("   ├─ Average words per chapter: %s", humanize.Comma(int64(math.Round(s.AvgWordsPerChapter))))
	line("   └─ Average words per arc: %s", humanize.Comma(int64(math.Round(s.AvgWordsPerArc))))

	line("\n%s\n", doubleRule)
}
