package main

import (
	"image"
	"os"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-tmxmap/imageprint"
)

func fit(img image.Image, mode imageprint.Mode) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		glog.V(2).Infof("no terminal size: %v", err)
		return img
	}
	graphic := mode == imageprint.ModeRasTerm || mode == imageprint.ModeITerm
	if graphic && termSize.WSXPixel != 0 && termSize.WSYPixel != 0 {
		// Pixels are shown as pixels, so the window's pixel size bounds the image.
		return resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
	}
	// Each pixel takes two columns and one row.
	return resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.Lanczos3)
}

func out(img image.Image, mode imageprint.Mode) {
	if *downsize {
		img = fit(img, mode)
	}
	p := &imageprint.Printer{W: os.Stdout, Mode: mode, Blanks: *blanks, Name: "map.png"}
	if err := p.Print(img); err != nil {
		glog.Errorf("printing: %v", err)
	}
}
