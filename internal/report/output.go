package report

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/AlecAivazis/survey/v2"
	"github.com/JoeJimFlood/SportPredictifier/internal/uri"
)

// Writer is anything that renders a report into a buffer.
type Writer func(buf *bytes.Buffer) error

// Options control how reports are written.
type Options struct {
	// Force overwrites existing outputs without asking.
	Force bool

	// DryRun renders reports but only logs where they would have been written.
	DryRun bool

	// Confirm asks whether to overwrite an existing output. Nil asks on the terminal.
	Confirm func(f string) (bool, error)
}

// Write renders a report and stores it at f, asking before an existing output is replaced.
// It returns false when the user declined to overwrite.
func Write(ctx context.Context, f string, opts Options, render Writer) (bool, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return false, err
	}
	if opts.DryRun {
		log.Printf("dry run: would write %d bytes to %s", buf.Len(), f)
		return true, nil
	}

	if !opts.Force {
		exists, err := uri.Exists(ctx, f)
		if err != nil {
			return false, fmt.Errorf("Write: unable to check %s: %w", f, err)
		}
		if exists {
			confirm := opts.Confirm
			if confirm == nil {
				confirm = askOverwrite
			}
			ok, err := confirm(f)
			if err != nil {
				return false, err
			}
			if !ok {
				log.Printf("not overwriting %s", f)
				return false, nil
			}
		}
	}

	w, err := uri.Create(ctx, f)
	if err != nil {
		return false, fmt.Errorf("Write: unable to create %s: %w", f, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		w.Close()
		return false, fmt.Errorf("Write: unable to write %s: %w", f, err)
	}
	if err := w.Close(); err != nil {
		return false, fmt.Errorf("Write: unable to close %s: %w", f, err)
	}
	log.Printf("wrote %s", f)
	return true, nil
}

func askOverwrite(f string) (bool, error) {
	q := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite it?", f),
		Default: false,
	}
	var ok bool
	if err := survey.AskOne(q, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
