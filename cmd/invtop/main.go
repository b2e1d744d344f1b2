package main

import (
	"os"

	"github.com/invtop/invtop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
