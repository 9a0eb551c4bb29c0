// genresults turns a Cucumber JSON report into result artifacts that
// `testify collect` can record.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/testify-automation/testify/internal/results"
)

func main() {
	inputFile := flag.String("input", "cucumber.json", "Input Cucumber JSON file")
	outputDir := flag.String("output", "reports/allure-results", "Directory to write result artifacts to")
	clean := flag.Bool("clean", false, "Remove existing artifacts from the output directory first")
	flag.Parse()

	in, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	report, err := results.ReadCucumber(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if *clean {
		if err := os.RemoveAll(*outputDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning output directory: %v\n", err)
			os.Exit(1)
		}
	}

	// The report carries no wall-clock start, so scenarios are laid out
	// from the report file's modification time minus their total duration.
	started := time.Now()
	if info, err := in.Stat(); err == nil {
		started = info.ModTime()
	}
	artifacts := results.FromCucumber(report, started)
	if len(artifacts) > 0 {
		elapsed := artifacts[len(artifacts)-1].Stop - artifacts[0].Start
		for i := range artifacts {
			artifacts[i].Start -= elapsed
			artifacts[i].Stop -= elapsed
		}
	}

	if err := results.WriteArtifacts(*outputDir, artifacts); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing artifacts: %v\n", err)
		os.Exit(1)
	}

	summary := results.Summarize(artifacts)
	fmt.Printf("Wrote %d result artifacts to %s (%d passed, %d failed, %d broken, %d skipped)\n",
		len(artifacts), *outputDir, summary.Passed, summary.Failed, summary.Broken, summary.Skipped)
}
