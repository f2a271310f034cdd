// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

// Command importctl loads bulk inventory CSV files into the bookstore
// database from the command line. See internal/cli for the commands.
package main

import (
	"fmt"
	"os"

	"github.com/abdelrahman21-arch/book-store-demo/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "importctl:", err)
		os.Exit(1)
	}
}
