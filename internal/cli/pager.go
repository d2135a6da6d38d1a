package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"

	"github.com/mithrel/notedeck/internal/notes"
	"github.com/mithrel/notedeck/internal/present"
	"github.com/mithrel/notedeck/pkg/api"
)

const defaultPager = "less -FRSX"

func renderList(ctx context.Context, out, errOut io.Writer, l notes.Listing, opts present.Options) error {
	if opts.Mode == present.ModeTUI {
		return present.RenderList(ctx, out, l, opts)
	}
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderList(ctx, w, l, opts)
	})
}

func renderNote(ctx context.Context, out, errOut io.Writer, d api.Detail, opts present.Options) error {
	return withPager(ctx, out, errOut, func(w io.Writer) error {
		return present.RenderNote(ctx, w, d, opts)
	})
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	if !isTerminal(out) {
		return write(out)
	}
	outFile := out.(*os.File)
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
