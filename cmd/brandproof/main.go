package main

import (
	"fmt"
	"os"

	"github.com/brandproof/brandproof/internal/cli"
	"github.com/brandproof/brandproof/internal/pipeline"
)

func main() {
	cfg, err := cli.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := pipeline.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
