package main

import (
	"fmt"
	"os"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
