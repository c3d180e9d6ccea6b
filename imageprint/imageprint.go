// Package imageprint prints images on terminal.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how pixels reach the terminal.
type Mode int

const (
	// Mode24bit changes the background with 24bit color escape sequences.
	Mode24bit Mode = iota
	// Mode256 uses the closest xterm 256 color.
	Mode256
	// ModeNoColor prints without any color escape sequences. Only makes
	// sense without blanks.
	ModeNoColor
	// ModeITerm sends a PNG using iTerm2's inline image escape sequence.
	ModeITerm
	// ModeRasTerm picks kitty, iTerm2 or sixel output, whichever the
	// terminal supports.
	ModeRasTerm
)

var modeNames = map[Mode]string{
	Mode24bit:   "24bit",
	Mode256:     "256",
	ModeNoColor: "nocolor",
	ModeITerm:   "iterm",
	ModeRasTerm: "rasterm",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, s) {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown print mode %q", s)
}

// Printer writes images to W.
type Printer struct {
	W    io.Writer
	Mode Mode
	// Blanks paints colored spaces instead of ascii art shading.
	Blanks bool
	// Name is reported to terminals that accept a file name with images.
	Name string
}

// Print draws i in the printer's mode.
func (p *Printer) Print(i image.Image) error {
	switch p.Mode {
	case Mode24bit, Mode256, ModeNoColor:
		return p.printText(i)
	case ModeITerm:
		return p.printITerm(i)
	case ModeRasTerm:
		return p.printRasTerm(i)
	}
	return errors.Errorf("unknown print mode %v", p.Mode)
}

func (p *Printer) printText(i image.Image) error {
	var buf bytes.Buffer
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.shade(&buf, i.At(x, y))
		}
		if p.Mode != ModeNoColor {
			buf.WriteString("\x1b[0m")
		}
		buf.WriteString("\n")
	}
	_, err := buf.WriteTo(p.W)
	return err
}

func (p *Printer) glyph(cR, cG, cB uint32) string {
	if p.Blanks {
		return "  "
	}
	a := ((cR + cG + cB) / 3) >> 8
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func (p *Printer) shade(buf *bytes.Buffer, col ic.Color) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if p.Mode == ModeNoColor {
			buf.WriteString("  ")
		} else {
			buf.WriteString("\x1b[0m  ")
		}
		return
	}
	g := p.glyph(cR, cG, cB)
	r8, g8, b8 := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch p.Mode {
	case ModeNoColor:
		buf.WriteString(g)
	case Mode24bit:
		fmt.Fprintf(buf, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r8, g8, b8, g)
	default:
		buf.WriteString(color.RGB(r8, g8, b8, true).Sprint(g))
	}
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func (p *Printer) printITerm(i image.Image) error {
	fn := p.Name
	if fn == "" {
		fn = "image.png"
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	bEnc.Close()
	_, err := fmt.Fprintf(p.W, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Dx(), i.Bounds().Dy(), b.String())
	return err
}
