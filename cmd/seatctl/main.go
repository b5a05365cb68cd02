package main

import (
	"os"

	"github.com/wedding-seating/go-seating-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
