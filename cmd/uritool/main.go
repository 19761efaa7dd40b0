// Command uritool builds, inspects and encodes URI templates from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "uritool:", err)
		os.Exit(1)
	}
}
