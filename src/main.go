package main

import (
	"banksync-server/src/commands"
	"os"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
