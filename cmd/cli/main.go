package main

import (
	"fmt"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal"
	"github.com/de-tools/carbon-atlas/pkg/services/source"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Registry: source.DefaultRegistry(),
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
