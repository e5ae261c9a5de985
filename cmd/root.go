package cmd

import (
	"fmt"
	"os"

	"github.com/Atsmon/seek-scraper/config"
	"github.com/Atsmon/seek-scraper/epub"
	"github.com/Atsmon/seek-scraper/logging"
	"github.com/Atsmon/seek-scraper/scraper"
	"github.com/Atsmon/seek-scraper/stats"
	"github.com/Atsmon/seek-scraper/text"
	"github.com/spf13/cobra"
)

type rootArgs struct {
	verbosity  int
	buildEpub  bool
	textPath   string
	outputPath string
	configPath string
}

var rArgs rootArgs

var RootCmd = &cobra.Command{
	Use:   "seek-scraper",
	Short: "Scrape the SEEK webserial and build an EPUB",
	Long:  "Scrape the SEEK webserial and build an EPUB",
	RunE:  runScrape,
}

func init() {
	RootCmd.Flags().CountVarP(&rArgs.verbosity, "verbose", "v", "increase log verbosity, repeatable")
	RootCmd.Flags().BoolVarP(&rArgs.buildEpub, "epub", "e", false, "build an EPUB after scraping")
	RootCmd.Flags().StringVarP(&rArgs.textPath, "text", "t", "", "export plain text chapters to this directory")
	RootCmd.Flags().StringVarP(&rArgs.outputPath, "output", "o", "", "EPUB output path")
	RootCmd.Flags().StringVar(&rArgs.configPath, "config", "", "config file path")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if rArgs.configPath != "" {
		loaded, err := config.Load(rArgs.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	log := logging.New(rArgs.verbosity)

	book, err := scraper.New(log, cfg.Scrape).Scrape()
	if err != nil {
		return err
	}

	stats.Render(os.Stdout, stats.Collect(book))

	if rArgs.textPath != "" {
		if err := text.Export(log, book, rArgs.textPath); err != nil {
			return fmt.Errorf("failed to export text: %v", err)
		}
	}

	if rArgs.buildEpub {
		outputPath := cfg.Output.Path
		if rArgs.outputPath != "" {
			outputPath = rArgs.outputPath
		}
		if err := epub.NewBuilder(log, cfg.Book).Build(book, outputPath); err != nil {
			return fmt.Errorf("failed to build epub: %v", err)
		}
		log.Infof("EPUB created successfully: %s", outputPath)
	}

	return nil
}
