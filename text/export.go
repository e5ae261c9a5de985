// Package text exports the scraped book as a plain text directory
// tree, one directory per arc and one file per chapter.
package text

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Atsmon/seek-scraper/model"
	"github.com/Atsmon/seek-scraper/utils"
	"go.uber.org/zap"
)

// Export writes every chapter's text under outputPath. Existing arc
// directories are replaced wholesale so stale chapters do not linger.
func Export(log *zap.SugaredLogger, book *model.Book, outputPath string) error {
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	for _, arc := range book.Arcs() {
		arcPath := filepath.Join(outputPath, utils.CleanName(arc.Name))
		if err := recreateDir(arcPath); err != nil {
			return err
		}
		log.Infof("Exporting arc %s to %s", arc.Name, arcPath)
		for _, chapter := range arc.Chapters() {
			chapterPath := filepath.Join(arcPath, utils.CleanName(chapter.Name)+".txt")
			if err := os.WriteFile(chapterPath, []byte(chapter.Text), 0644); err != nil {
				return fmt.Errorf("failed to write chapter file: %v", err)
			}
		}
	}
	return nil
}

func recreateDir(path string) error {
	_, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to get output directory: %v", err)
	}
	if err == nil {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove output directory: %v", err)
		}
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	return nil
}
