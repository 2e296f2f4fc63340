package main

import (
	"os"

	"github.com/rustyeddy/autotrade/cmd/autotrade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
