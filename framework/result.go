package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Find returns the result of the test with the given path, if it ran.
func (r Results) Find(path ...string) (TestResult, bool) {
	name := TestID{Path: path}.String()
	for _, t := range r.Tests {
		if t.TestID.String() == name {
			return t, true
		}
	}
	return TestResult{}, false
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run.
func PrintResults(out io.Writer, results Results) {
	if results.OK() {
		fmt.Fprintf(out, "%s (%d tests, %d skipped)\n",
			color.GreenString("All tests passed"), len(results.Tests), len(results.Skipped))
		return
	}
	fmt.Fprintf(out, "%s\n", color.RedString("FAILED TESTS (%d):", len(results.Failures)))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "* %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
