package main

import (
	"os"

	"github.com/abhisek/onthi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
