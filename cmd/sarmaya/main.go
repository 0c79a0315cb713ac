package main

import (
	"os"

	"github.com/sarmaya-dev/sarmaya/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
