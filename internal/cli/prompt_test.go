package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pyvenv/ape/internal/console"
	"github.com/pyvenv/ape/internal/venv"
)

var promptEnvs = []venv.Environment{
	{Name: "alpha", Kind: venv.KindVenv, Path: "/envs/alpha"},
	{Name: "Beta", Kind: venv.KindConda, Path: "/envs/beta"},
}

func TestPromptSelect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // empty means no selection
	}{
		{"by number", "2\n", "Beta"},
		{"by name any case", "ALPHA\n", "alpha"},
		{"quit", "q\n", ""},
		{"quit upper", "Q\n", ""},
		{"retry after unknown", "nope\n1\n", "alpha"},
		{"out of range number", "3\nq\n", ""},
		{"end of input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			con := console.New(&out, &out, true)

			got := PromptSelect(strings.NewReader(tt.input), con, promptEnvs)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("got %q, want no selection", got.Name)
			case tt.want != "" && (got == nil || got.Name != tt.want):
				t.Errorf("got %v, want %q", got, tt.want)
			}
		})
	}
}

func TestPromptSelect_ReportsUnknown(t *testing.T) {
	var out bytes.Buffer
	con := console.New(&out, &out, true)

	PromptSelect(strings.NewReader("gamma\nq\n"), con, promptEnvs)

	for _, want := range []string{`Environment "gamma" not found.`, "Exiting...", "> "} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(strings.NewReader(""), &bytes.Buffer{}) {
		t.Error("buffers are not terminals")
	}
}
