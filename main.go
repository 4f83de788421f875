package main

import (
	"os"

	"github.com/abhisek/prahar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
