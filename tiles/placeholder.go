package tiles

// This file contains procedurally generated tile images, usable when no
// sprite sheet could be loaded.

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"strings"

	"github.com/bradfitz/iter"
)

type placeholderPalette struct {
	fill, border, speckle color.RGBA
}

var (
	grassPalette = placeholderPalette{
		fill:    color.RGBA{34, 139, 34, 255},
		border:  color.RGBA{0, 100, 0, 255},
		speckle: color.RGBA{50, 205, 50, 255},
	}
	waterPalette = placeholderPalette{
		fill:    color.RGBA{30, 90, 200, 255},
		border:  color.RGBA{10, 50, 140, 255},
		speckle: color.RGBA{120, 170, 240, 255},
	}
	soilPalette = placeholderPalette{
		fill:    color.RGBA{139, 90, 43, 255},
		border:  color.RGBA{95, 60, 25, 255},
		speckle: color.RGBA{170, 120, 70, 255},
	}
	treePalette = placeholderPalette{
		fill:    color.RGBA{0, 80, 20, 255},
		border:  color.RGBA{60, 40, 10, 255},
		speckle: color.RGBA{20, 120, 40, 255},
	}
)

func paletteFor(name string, id int) placeholderPalette {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "water"):
		return waterPalette
	case strings.Contains(n, "soil"):
		return soilPalette
	case strings.Contains(n, "tree"):
		return treePalette
	case strings.Contains(n, "grass"), n == "":
		return grassPalette
	}
	// Anything else gets a hue derived from the id so neighbouring tiles differ.
	c := color.RGBA{uint8(40 + id*53%200), uint8(40 + id*97%200), uint8(40 + id*29%200), 255}
	return placeholderPalette{
		fill:    c,
		border:  color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255},
		speckle: color.RGBA{255 - c.R/2, 255 - c.G/2, 255 - c.B/2, 255},
	}
}

// PlaceholderImage paints a w×h tile: a flat fill, a one pixel darker border
// and eight 1×2 speckles. The speckle positions depend only on seed.
func PlaceholderImage(w, h int, name string, seed int64) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	p := paletteFor(name, int(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{p.fill}, image.Point{}, draw.Src)

	for x := 0; x < w; x++ {
		img.SetRGBA(x, 0, p.border)
		img.SetRGBA(x, h-1, p.border)
	}
	for y := 0; y < h; y++ {
		img.SetRGBA(0, y, p.border)
		img.SetRGBA(w-1, y, p.border)
	}

	if w < 3 || h < 4 {
		return img
	}
	rng := rand.New(rand.NewSource(seed))
	for range iter.N(8) {
		x := rng.Intn(w-2) + 1
		y := rng.Intn(h-3) + 1
		img.SetRGBA(x, y, p.speckle)
		img.SetRGBA(x, y+1, p.speckle)
	}
	return img
}

// Placeholder returns a descriptor whose image is generated, not loaded. Tiles
// named like trees are solid.
func Placeholder(id int, name string, w, h int) Descriptor {
	return Descriptor{
		ID:    id,
		Name:  name,
		Image: PlaceholderImage(w, h, name, int64(id)),
		Solid: strings.Contains(strings.ToLower(name), "tree"),
	}
}
