package main

import (
	"os"

	"vehicle-catalog-api/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
