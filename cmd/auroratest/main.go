package main

import (
	"fmt"
	"os"
)

func main() {
	root := "testdata/golden"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	suites, err := collectSuites(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tf := executeTests(suites, os.Stdout)
	tf.PrintResult(os.Stdout)

	if tf.Failed > 0 {
		os.Exit(1)
	}
}
