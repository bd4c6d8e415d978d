package main

import (
	"os"

	"github.com/kelsier27/investsim-backend/cmd/investsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
