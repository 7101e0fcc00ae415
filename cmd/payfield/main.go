package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cleared-dev/payfield/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, commands.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
