package main

import (
	"fmt"
	"os"

	"goproc/process_details"
	"goproc/process_windows"
)

func main() {
	root := newRootCmd(process_windows.Default(), process_details.Lookup)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
