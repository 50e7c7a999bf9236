// Package main provides the binder CLI, a personal record-management
// store: per-user folders of uniquely labeled records with category,
// priority, deadline, and completion status.
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
