//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary      = "bin/testify"
	reportsDir  = "reports"
	cucumberOut = "reports/cucumber.json"
)

// Default target - build the binary
var Default = Build

func ldflags() string {
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	pkg := "github.com/testify-automation/testify/internal/cli"
	return fmt.Sprintf("-X %s.GitCommit=%s -X %s.BuildDate=%s",
		pkg, commit, pkg, time.Now().UTC().Format(time.RFC3339))
}

// Build builds the testify binary
func Build() error {
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/testify")
}

// Clean removes build artifacts and generated reports
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm(reportsDir)
}

// Test namespace for testing commands
type Test mg.Namespace

// Unit runs the package tests
func (Test) Unit() error {
	return sh.RunV("go", "test", "./internal/...", "./spec/support/...")
}

// Spec runs the behaviour suite and records it in the run history: godog
// writes Cucumber JSON, genresults turns it into result artifacts and
// testify collect appends the run.
func (Test) Spec() error {
	mg.Deps(Build)

	abs, err := filepath.Abs(cucumberOut)
	if err != nil {
		return err
	}
	specErr := sh.RunWithV(map[string]string{"GODOG_FORMAT": "pretty,cucumber:" + abs}, "go", "test", "./spec")

	if err := sh.RunV("go", "run", "./spec/cmd/genresults", "-input", cucumberOut, "-clean"); err != nil {
		return err
	}
	if err := sh.RunV(binary, "collect", "spec"); err != nil {
		return err
	}
	return specErr
}

// All runs unit tests then the behaviour suite
func (Test) All() {
	mg.SerialDeps(Test{}.Unit, Test{}.Spec)
}

// Catalog regenerates the catalog of the behaviour suite's feature files
func Catalog() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"FEATURES_DIR": "spec/features"}, binary, "catalog")
}
