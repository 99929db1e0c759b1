package main

import (
	"os"

	"github.com/levelfourab/s2-go/cmd/s2/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
