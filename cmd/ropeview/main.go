// Package main is the entry point for ropeview, a read-only terminal pager
// for inspecting files through the rope-backed buffer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/textrope/buffer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	f, err := os.Open(opts.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	buf, err := buffer.NewFromReader(f, buffer.WithTabWidth(opts.tabWidth))
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", opts.path, err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		snap:   buf.Snapshot(),
		name:   filepath.Base(opts.path),
	}
	v.loop()
	return 0
}

type options struct {
	path     string
	tabWidth int
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.IntVar(&opts.tabWidth, "tab", 4, "Tab stop width")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ropeview - read-only file viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ropeview [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  arrows, PgUp/PgDn  scroll\n")
		fmt.Fprintf(os.Stderr, "  g / G              jump to start / end\n")
		fmt.Fprintf(os.Stderr, "  q, Esc             quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("ropeview %s (%s)\n", version, commit)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.path = flag.Arg(0)
	return opts
}

// viewer renders a buffer snapshot into a tcell screen with a one-row
// status line at the bottom.
type viewer struct {
	screen  tcell.Screen
	snap    *buffer.Snapshot
	name    string
	topLine int
	leftCol int
}

func (v *viewer) loop() {
	for {
		v.draw()
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	_, rows := v.screen.Size()
	page := max(rows-1, 1)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.scroll(-1)
	case tcell.KeyDown:
		v.scroll(1)
	case tcell.KeyPgUp:
		v.scroll(-page)
	case tcell.KeyPgDn:
		v.scroll(page)
	case tcell.KeyLeft:
		v.leftCol = max(v.leftCol-4, 0)
	case tcell.KeyRight:
		v.leftCol += 4
	case tcell.KeyHome:
		v.leftCol = 0
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'g':
			v.topLine = 0
		case 'G':
			v.topLine = max(v.snap.LineCount()-page, 0)
		case 'j':
			v.scroll(1)
		case 'k':
			v.scroll(-1)
		}
	}
	return true
}

func (v *viewer) scroll(delta int) {
	v.topLine = min(max(v.topLine+delta, 0), v.snap.LineCount()-1)
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	if rows < 2 {
		v.screen.Show()
		return
	}

	style := tcell.StyleDefault
	for row := 0; row < rows-1; row++ {
		line := v.topLine + row
		if line >= v.snap.LineCount() {
			break
		}
		text, err := v.snap.LineText(line)
		if err != nil {
			break
		}
		v.drawLine(row, cols, text, style)
	}
	v.drawStatus(cols, rows-1)
	v.screen.Show()
}

// drawLine paints one buffer line with tab expansion and horizontal
// scrolling. Cells left of leftCol are clipped.
func (v *viewer) drawLine(row, cols int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		var w int
		if r == '\t' {
			w = v.snap.TabWidth() - col%v.snap.TabWidth()
			r = ' '
		} else {
			w = runewidth.RuneWidth(r)
		}
		x := col - v.leftCol
		if x >= cols {
			return
		}
		if x >= 0 && w > 0 {
			v.screen.SetContent(x, row, r, nil, style)
		}
		col += w
	}
}

func (v *viewer) drawStatus(cols, row int) {
	style := tcell.StyleDefault.Reverse(true)
	status := fmt.Sprintf(" %s | %d bytes, %d chars, %d lines | line %d/%d ",
		v.name, v.snap.Len(), v.snap.LenChars(), v.snap.LineCount(),
		v.topLine+1, v.snap.LineCount())
	col := 0
	for _, r := range status {
		if col >= cols {
			break
		}
		v.screen.SetContent(col, row, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for col < cols {
		v.screen.SetContent(col, row, ' ', nil, style)
		col++
	}
}
