// Package bar builds the progress indicators the CLI shows during port
// scans and discovery walks.
package bar

import (
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// New returns a fixed-length progress bar, one tick per completed step.
func New(length int, text string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		length,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(text),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Spinner returns an indeterminate indicator for walks whose length is
// not known upfront, like the chained discovery queries.
func Spinner(text string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		-1,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription(text),
		progressbar.OptionSpinnerType(14),
	)
}
