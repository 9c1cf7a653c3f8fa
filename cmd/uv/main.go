package main

import (
	"os"

	"github.com/skshetry/uv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
