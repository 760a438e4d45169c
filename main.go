package main

import (
	"os"

	"github.com/NikKohlmeier/job-helper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
