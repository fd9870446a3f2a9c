package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotfiler/cmd/dotfiler"
)

func main() {
	rootCmd := dotfiler.NewRootCmd()

	err := doc.GenMan(rootCmd, dotfiler.ManHeader(), os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
