package main

import (
	"os"

	"github.com/jhoicas/nota-fiscal/cmd/notafiscal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
