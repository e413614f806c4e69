package main

import (
	"os"

	"github.com/ghuser/equipstore/cmd/equipctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
