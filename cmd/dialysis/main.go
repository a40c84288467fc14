package main

import (
	"os"

	"github.com/rustyeddy/dialysis/cmd/dialysis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
