// cmd/dashboard/main.go
package main

import (
	"errors"
	"os"

	"github.com/pterm/pterm"

	"finflow-dashboard/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			pterm.Error.Println(err)
		}
		os.Exit(1)
	}
}
