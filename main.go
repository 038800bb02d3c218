// file: main.go
// version: 1.0.0
// guid: 01122334-a7b8-c9da-ebfc-0d1e2f3a4b5c

package main

import (
	"fmt"
	"os"

	"github.com/jdfalk/itl-exporter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
