package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

func twoPixels() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	return img
}

func TestPrintNoColor(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf, Mode: ModeNoColor}
	if err := p.Print(twoPixels()); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got, want := buf.String(), "##  \n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestPrint24bit(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf, Mode: Mode24bit, Blanks: true}
	if err := p.Print(twoPixels()); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got, want := buf.String(), "\x1b[48;2;255;255;255m  \x1b[0m\x1b[0m  \x1b[0m\n"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestPrintITerm(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{W: &buf, Mode: ModeITerm}
	if err := p.Print(twoPixels()); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if !strings.Contains(buf.String(), "\033]1337;File=name=aW1hZ2UucG5n;inline=1;") {
		t.Errorf("got %q; want an iterm inline image sequence", buf.String())
	}
}

func TestParseMode(t *testing.T) {
	for m, n := range modeNames {
		got, err := ParseMode(n)
		if err != nil || got != m {
			t.Errorf("ParseMode(%q): got %v, %v; want %v", n, got, err, m)
		}
	}
	if _, err := ParseMode("vga"); err == nil {
		t.Error("ParseMode(vga): got no error")
	}
}
