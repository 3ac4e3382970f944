// Package main is the entry point for the postcheck CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"social-content-service/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidRecord) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
