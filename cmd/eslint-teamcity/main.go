package main

import (
	"os"

	"github.com/sprite-ai/eslint-teamcity/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
