package main

import (
	"os"

	"github.com/edocico/a11y-audit/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
