package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/pyvenv/ape/internal/console"
	"github.com/pyvenv/ape/internal/locator"
	"github.com/pyvenv/ape/internal/venv"
)

// IsTerminal reports whether r and w are both attached to a terminal.
func IsTerminal(r io.Reader, w io.Writer) bool {
	in, ok := r.(*os.File)
	if !ok {
		return false
	}
	out, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}

// PromptSelect asks for a number or name until one matches envs. It returns
// nil when the user enters q or the input ends.
func PromptSelect(r io.Reader, con *console.Console, envs []venv.Environment) *venv.Environment {
	scanner := bufio.NewScanner(r)
	for {
		con.Println("Enter the number or name of the environment, or Q to quit")
		con.Print("> ")

		if !scanner.Scan() {
			con.Println()
			return nil
		}
		input := strings.TrimSpace(scanner.Text())

		if strings.EqualFold(input, "q") {
			con.Println("Exiting...")
			return nil
		}
		if env, ok := locator.Lookup(envs, input); ok {
			return env
		}

		con.Println()
		con.Println(con.Sprintf("Environment %q not found.", input))
		con.Println()
	}
}
