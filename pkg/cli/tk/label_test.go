package tk

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"calc.elv.sh/pkg/cli/term"
	"calc.elv.sh/pkg/ui"
)

var labelRenderTests = []struct {
	name          string
	label         Label
	width, height int
	want          *term.Buffer
}{
	{"text fits", Label{ui.T("12,345")}, 10, 2,
		term.NewBufferBuilder(10).Write("12,345").Buffer()},
	{"text wraps", Label{ui.T("1234567")}, 4, 2,
		term.NewBufferBuilder(4).Write("1234567").Buffer()},
	{"cropped to height", Label{ui.T("1234567")}, 4, 1,
		term.NewBufferBuilder(4).Write("1234").Buffer()},
	{"styled", Label{ui.T("Overflow", ui.FgRed)}, 10, 1,
		term.NewBufferBuilder(10).Write("Overflow", ui.FgRed).Buffer()},
}

func TestLabel_Render(t *testing.T) {
	for _, test := range labelRenderTests {
		t.Run(test.name, func(t *testing.T) {
			got := test.label.Render(test.width, test.height)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("buffer (-want +got):\n%s", diff)
				t.Logf("got: %s", got.TTYString())
			}
		})
	}
}

func TestLabel_MaxHeight(t *testing.T) {
	l := Label{ui.T("1234567")}
	if h := l.MaxHeight(4, 1); h != 2 {
		t.Errorf("MaxHeight -> %d, want 2", h)
	}
}

func TestLabel_Handle(t *testing.T) {
	if (Label{}).Handle(term.K('a')) {
		t.Errorf("Handle -> true, want false")
	}
}
