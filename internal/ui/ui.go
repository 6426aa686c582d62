package ui

import (
	"io"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// LogView is a read-only multiline text widget that the process output gets
// mirrored into. Typing into it does nothing.
type LogView struct {
	widget.Entry
}

func NewLogView() *LogView {
	view := &LogView{}
	view.ExtendBaseWidget(view)
	view.MultiLine = true
	view.Wrapping = fyne.TextWrapWord
	return view
}

func (v *LogView) TypedRune(r rune) {
	// Do nothing
}

func (v *LogView) TypedKey(key *fyne.KeyEvent) {
	// Do nothing
}

// Custom renderer to make the textbox background transparent
func (v *LogView) CreateRenderer() fyne.WidgetRenderer {
	renderer := v.Entry.CreateRenderer()
	for _, obj := range renderer.Objects() {
		if bg, ok := obj.(*canvas.Rectangle); ok {
			bg.Hide()
		}
	}
	return renderer
}

// implements the io.Writer interface
type outputToGuiRedirector struct {
	orig             io.Writer
	textWidgetWriter func(string)
	scrollToEnd      func()
}

func (c *outputToGuiRedirector) Write(p []byte) (n int, err error) {
	c.textWidgetWriter(string(p))
	c.scrollToEnd()

	// Don't return the length from writing to the original stream because on
	// Windows it might not be available at all; report the full length.
	c.orig.Write(p)
	return len(p), nil
}

// InterceptTextOutputToGui mirrors everything written to stdout and stderr
// into the log view, so per-file warnings land where the user can see them.
func InterceptTextOutputToGui(view *LogView) {
	scrollToEnd := func() {
		view.CursorRow = len(view.Text) - 1
	}
	redirectOutput := func(orig **os.File) {
		readPipe, writePipe, _ := os.Pipe()
		outputStream := &outputToGuiRedirector{
			orig:             *orig,
			textWidgetWriter: view.Append,
			scrollToEnd:      scrollToEnd,
		}
		*orig = writePipe
		go io.Copy(outputStream, readPipe)
	}
	redirectOutput(&os.Stdout)
	redirectOutput(&os.Stderr)
}
