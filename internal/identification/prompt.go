package identification

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// confirmSearch lets an operator override the generated search string before
// the search runs. Without an interactive terminal the query passes through
// unchanged, so scripted runs never block on input.
func confirmSearch(query string, input io.Reader, output io.Writer) string {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stderr
	}
	if f, ok := input.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return query
	}

	fmt.Fprintf(output, "Search IMDb for %q or enter a new search: ", query)
	scanner := bufio.NewScanner(input)
	if !scanner.Scan() {
		return query
	}
	if line := scanner.Text(); line != "" {
		return line
	}
	return query
}
