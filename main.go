package main

import (
	"log"

	"github.com/Atsmon/seek-scraper/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
