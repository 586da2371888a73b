package main

import (
	"os"

	"fairval/cmd/fairval/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
