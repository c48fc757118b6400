package main

import (
	"fmt"
	"os"

	"github.com/amreid/nextup/internal/cli"
	"github.com/amreid/nextup/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return cli.NewRootCmd(cfg).Execute()
}
