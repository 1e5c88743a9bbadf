package main

import (
	"os"

	"github.com/bnema/teller/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
