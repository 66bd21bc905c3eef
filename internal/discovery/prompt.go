package discovery

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/martinsuchenak/clientusage/internal/model"
)

// StdinIsTerminal reports whether the process is attached to an interactive
// terminal. Headless runs must resolve organization ambiguity explicitly.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptOrganization asks the user to pick one of the candidate
// organizations by number or exact name.
func PromptOrganization(candidates []model.Organization, in io.Reader, out io.Writer) (model.Organization, error) {
	fmt.Fprintln(out, "Multiple organizations accessible:")
	for i, org := range candidates {
		fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, org.Name, org.ID)
	}
	fmt.Fprint(out, "Select an organization (number or name): ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return model.Organization{}, fmt.Errorf("read selection: %w", err)
		}
		return model.Organization{}, fmt.Errorf("no selection made")
	}
	answer := strings.TrimSpace(scanner.Text())

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(candidates) {
			return model.Organization{}, fmt.Errorf("selection %d out of range", n)
		}
		return candidates[n-1], nil
	}

	// Organization names are case sensitive.
	for _, org := range candidates {
		if org.Name == answer {
			return org, nil
		}
	}
	return model.Organization{}, fmt.Errorf("organization %q not among the candidates", answer)
}
