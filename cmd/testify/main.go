package main

import (
	"os"

	"github.com/testify-automation/testify/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
