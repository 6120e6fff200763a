package main

import (
	"fmt"
	"os"

	"github.com/obriencj/go-values/pkg/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "values: %v\n", err)
		os.Exit(1)
	}
}
