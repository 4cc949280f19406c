package main

import (
	"os"

	"github.com/profvolz/gasspeicher/cmd/gasspeicher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
