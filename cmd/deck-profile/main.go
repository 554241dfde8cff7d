package main

import (
	"os"

	"github.com/bianoble/deck-profile/cmd/deck-profile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
