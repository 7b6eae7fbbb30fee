package main

import (
	"fmt"
	"os"

	"github.com/literature-engine/literature-server-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
