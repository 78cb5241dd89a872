// Package main implements auroratest, a golden-file test runner for the
// Aurora interpreter: every testdata/golden/*.aurora script is run and its
// stdout diffed against the sibling *.golden fixture (adapted from the
// teacher's test/ package, which instead diffed against a reference
// implementation binary — Aurora has none, so recorded golden output
// stands in for it).
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/aurora-lang/aurora/internal/interpreter"
	"github.com/aurora-lang/aurora/internal/lexer"
	"github.com/aurora-lang/aurora/internal/parser"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	diffColor = color.New(color.FgYellow)
)

// TestCase is one script/golden-output pair.
type TestCase struct {
	Name       string
	ScriptPath string
	GoldenPath string
}

// TestSuite groups every TestCase found under one directory.
type TestSuite struct {
	Dir   string
	Cases []TestCase
}

// TestFramework runs every suite and accumulates a pass/fail tally.
type TestFramework struct {
	Suites []TestSuite

	Passed int
	Failed int
}

// collectSuites walks root looking for *.aurora scripts with a matching
// *.golden fixture alongside them, one TestSuite per directory.
func collectSuites(root string) ([]TestSuite, error) {
	dirs := map[string][]TestCase{}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".aurora") {
			return nil
		}

		golden := strings.TrimSuffix(path, ".aurora") + ".golden"
		if _, statErr := os.Stat(golden); statErr != nil {
			return nil
		}

		dir := filepath.Dir(path)
		name := strings.TrimSuffix(filepath.Base(path), ".aurora")
		dirs[dir] = append(dirs[dir], TestCase{Name: name, ScriptPath: path, GoldenPath: golden})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var suites []TestSuite
	for dir, cases := range dirs {
		sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
		suites = append(suites, TestSuite{Dir: dir, Cases: cases})
	}
	sort.Slice(suites, func(i, j int) bool { return suites[i].Dir < suites[j].Dir })
	return suites, nil
}

// executeTests runs every case in every suite, reporting results to w as it
// goes, and returns the completed TestFramework for a final summary.
func executeTests(suites []TestSuite, w io.Writer) *TestFramework {
	tf := &TestFramework{Suites: suites}

	for _, suite := range suites {
		fmt.Fprintf(w, "%s\n", suite.Dir)
		for _, tc := range suite.Cases {
			got, err := runCase(tc)
			want, readErr := os.ReadFile(tc.GoldenPath)
			if readErr != nil {
				failColor.Fprintf(w, "  FAIL %s (could not read golden file: %v)\n", tc.Name, readErr)
				tf.Failed++
				continue
			}

			if err != nil {
				failColor.Fprintf(w, "  FAIL %s (%v)\n", tc.Name, err)
				tf.Failed++
				continue
			}

			if got == string(want) {
				passColor.Fprintf(w, "  PASS %s\n", tc.Name)
				tf.Passed++
			} else {
				failColor.Fprintf(w, "  FAIL %s\n", tc.Name)
				printDiff(w, string(want), got)
				tf.Failed++
			}
		}
	}
	return tf
}

// runCase lexes, parses, and runs one script, capturing everything it
// prints to stdout.
func runCase(tc TestCase) (string, error) {
	src, err := os.ReadFile(tc.ScriptPath)
	if err != nil {
		return "", err
	}

	toks, lexErrs := lexer.New(src).Scan()
	if len(lexErrs) > 0 {
		return "", fmt.Errorf("lex error: %s", lexErrs[0])
	}

	decls, parseErrs := parser.New(toks).Parse()
	if len(parseErrs) > 0 {
		return "", fmt.Errorf("parse error: %s", parseErrs[0])
	}

	var out bytes.Buffer
	in := interpreter.New(&out)
	if err := in.Run(decls); err != nil {
		return "", err
	}
	return out.String(), nil
}

// printDiff renders a line-by-line expected/actual comparison.
func printDiff(w io.Writer, want, got string) {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")

	max := len(wantLines)
	if len(gotLines) > max {
		max = len(gotLines)
	}
	for i := 0; i < max; i++ {
		var w1, g1 string
		if i < len(wantLines) {
			w1 = wantLines[i]
		}
		if i < len(gotLines) {
			g1 = gotLines[i]
		}
		if w1 == g1 {
			continue
		}
		diffColor.Fprintf(w, "    line %d: want %q, got %q\n", i+1, w1, g1)
	}
}

// PrintResult prints the final pass/fail summary.
func (tf *TestFramework) PrintResult(w io.Writer) {
	total := tf.Passed + tf.Failed
	if tf.Failed == 0 {
		passColor.Fprintf(w, "%d/%d passed\n", tf.Passed, total)
		return
	}
	failColor.Fprintf(w, "%d/%d passed, %d failed\n", tf.Passed, total, tf.Failed)
}
