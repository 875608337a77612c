package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/angryss/idpctl/pkg/blueprint"
)

// promptConfirmer asks the user to confirm a destructive change on the
// terminal. It lists every resource the change would delete before asking;
// the default answer is no.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func newPromptConfirmer() *promptConfirmer {
	return &promptConfirmer{in: os.Stdin, out: os.Stdout}
}

func (c *promptConfirmer) Confirm(ctx context.Context, prompt blueprint.ConfirmPrompt) (bool, error) {
	fmt.Fprintln(c.out, prompt.Title)
	fmt.Fprintln(c.out)
	for _, r := range prompt.Affected {
		fmt.Fprintf(c.out, "  - %s (%s)\n", r.Name, r.CloudProviderDisplayName)
	}
	fmt.Fprintln(c.out)

	if f, ok := c.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal (use --auto-approve)")
	}

	fmt.Fprint(c.out, "Are you sure you want to continue? [y/N]: ")
	reader := bufio.NewReader(c.in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// autoApproveConfirmer accepts every prompt. Used with --auto-approve.
type autoApproveConfirmer struct{}

func (autoApproveConfirmer) Confirm(ctx context.Context, prompt blueprint.ConfirmPrompt) (bool, error) {
	return true, nil
}
