package main

import (
	"os"

	"github.com/uplift-force/coordinator-svc/internal/cli"
)

func main() {
	if !cli.Run(os.Args) {
		os.Exit(1)
	}
}
