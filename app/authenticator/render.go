package authenticator

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/dmitrymomot/authenticator/pkg/watch"
)

// TextRenderer writes frames as "123 456  12s". On a terminal it redraws a
// single line in place; otherwise it writes one line per rotation.
type TextRenderer struct {
	mu      sync.Mutex
	out     io.Writer
	inPlace bool
}

// NewTextRenderer creates a renderer for out. In-place redraw is enabled
// when out is a terminal.
func NewTextRenderer(out io.Writer) *TextRenderer {
	r := &TextRenderer{out: out}
	if f, ok := out.(*os.File); ok {
		r.inPlace = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// Render implements watch.Renderer.
func (r *TextRenderer) Render(f watch.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := FormatFrame(f)
	if r.inPlace {
		fmt.Fprintf(r.out, "\r\033[K%s", line)
		return
	}
	if f.Rotated {
		fmt.Fprintln(r.out, line)
	}
}

// FormatFrame renders a frame as text. Codes are split into two groups of three digits.
func FormatFrame(f watch.Frame) string {
	if f.Err != nil {
		return fmt.Sprintf("error: %v", f.Err)
	}
	code := f.Code
	if len(code) == 6 {
		code = code[:3] + " " + code[3:]
	}
	return fmt.Sprintf("%s  %2ds", code, f.Remaining)
}

// Finish terminates an in-place line so the shell prompt starts on a new line.
func (r *TextRenderer) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inPlace {
		fmt.Fprintln(r.out)
	}
}
