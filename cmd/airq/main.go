// airq predicts an air-quality category from environmental measurements.
//
// Usage:
//
//	airq serve    [--addr=:8501] [--input=slider|text]
//	airq form
//	airq predict  [name=value ...] [--json] [--verbosity=standard]
//	airq features [--json]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
