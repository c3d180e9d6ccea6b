// Package tmx reads layered tile maps in the TMX format written by the Tiled
// map editor, and turns them into tilemap models.
//
// Only the CSV layer encoding is supported, without compression. Loading is
// all-or-nothing: either every layer is decoded and a loaded model is
// returned, or a *LoadError describes the first check that failed and no model
// is built at all.
package tmx

import (
	"bytes"
	"encoding/xml"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-tmxmap/tilemap"
	"badc0de.net/pkg/go-tmxmap/tiles"
)

type rawLayer struct {
	Name    string    `xml:"name,attr"`
	Visible string    `xml:"visible,attr"`
	Data    []rawData `xml:"data"`
}

type rawData struct {
	Encoding    string `xml:"encoding,attr"`
	Compression string `xml:"compression,attr"`
	Text        string `xml:",chardata"`
}

// hidden reports whether the layer's visible attribute turns it off. Only the
// literal "0" does.
func (l *rawLayer) hidden() bool {
	return l.Visible == "0"
}

// Parse loads the map file at path. Tile IDs in the resulting model are
// resolved through registry.
func Parse(path string, registry *tiles.Registry) (*tilemap.Map, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newLoadError(ErrFileNotFound, path).withCause(err)
		}
		return nil, newLoadError(ErrNotReadable, path).withCause(err)
	}
	if fi.IsDir() {
		return nil, newLoadError(ErrNotReadable, path).withDetail("is a directory")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(ErrNotReadable, path).withCause(err)
	}
	defer f.Close()

	return decode(f, path, registry)
}

// Decode reads a map from r. name is only used in error messages and may be
// empty.
func Decode(r io.Reader, name string, registry *tiles.Registry) (*tilemap.Map, error) {
	return decode(r, name, registry)
}

func decode(r io.Reader, path string, registry *tiles.Registry) (*tilemap.Map, error) {
	if registry == nil {
		return nil, errors.Errorf("tmx %s: no tile registry", path)
	}
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, newLoadError(ErrNotReadable, path).withCause(err)
	}

	if err := checkWellFormed(buf); err != nil {
		return nil, newLoadError(ErrXMLParse, path).withCause(err)
	}

	root, layers, err := scan(buf)
	if err != nil {
		return nil, newLoadError(ErrXMLParse, path).withCause(err)
	}

	glog.V(2).Infof("tmx %s: root element <%s>", path, root.Name.Local)
	if root.Name.Local != "map" {
		return nil, newLoadError(ErrNotAMapDocument, path).withDetail("root element is <%s>, want <map>", root.Name.Local)
	}

	width, height, lerr := dimensions(root, path)
	if lerr != nil {
		return nil, lerr
	}
	glog.V(2).Infof("tmx %s: %dx%d tiles, %d layers", path, width, height, len(layers))

	if len(layers) == 0 {
		return nil, newLoadError(ErrNoLayers, path)
	}

	// Data block headers are checked for every layer before any CSV is parsed.
	for i := range layers {
		if lerr := checkData(&layers[i], i, path); lerr != nil {
			return nil, lerr
		}
	}

	built := make([]*tilemap.Layer, 0, len(layers))
	for i := range layers {
		l := &layers[i]
		ids, lerr := decodeCSV(l.Data[0].Text, width, height)
		if lerr != nil {
			lerr.Path = path
			return nil, lerr.withLayer(i, l.Name)
		}
		glog.V(2).Infof("tmx %s: layer %d %q: %d tiles, visible=%t", path, i, l.Name, len(ids), !l.hidden())
		built = append(built, tilemap.NewLayer(l.Name, !l.hidden(), ids))
	}

	m, err := tilemap.New(width, height, built, registry)
	if err != nil {
		return nil, errors.Wrapf(err, "tmx %s", path)
	}
	if tw, th, ok := tileSize(root); ok {
		m.SetTileSize(tw, th)
	}
	return m, nil
}

// checkWellFormed reads every token in the document, failing on any syntax
// error or on content following the root element.
func checkWellFormed(buf []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(buf))
	depth := 0
	seenRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && seenRoot {
				line, _ := dec.InputPos()
				return &xml.SyntaxError{Msg: "element <" + t.Name.Local + "> after root element", Line: line}
			}
			seenRoot = true
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				return &xml.SyntaxError{Msg: "text outside root element", Line: line}
			}
		}
	}
	if !seenRoot {
		return &xml.SyntaxError{Msg: "no root element"}
	}
	return nil
}

// scan returns the root element and every <layer> element in document order,
// including layers nested in groups.
func scan(buf []byte) (xml.StartElement, []rawLayer, error) {
	dec := xml.NewDecoder(bytes.NewReader(buf))
	var root xml.StartElement
	haveRoot := false
	var layers []rawLayer
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return root, layers, nil
		}
		if err != nil {
			return root, nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !haveRoot {
			root = se.Copy()
			haveRoot = true
			continue
		}
		if se.Name.Local != "layer" {
			continue
		}
		var l rawLayer
		if err := dec.DecodeElement(&l, &se); err != nil {
			return root, nil, err
		}
		layers = append(layers, l)
	}
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func dimensions(root xml.StartElement, path string) (int, int, *LoadError) {
	ws, wok := attr(root, "width")
	hs, hok := attr(root, "height")
	if !wok || !hok || strings.TrimSpace(ws) == "" || strings.TrimSpace(hs) == "" {
		return 0, 0, newLoadError(ErrMissingDimensions, path).withDetail("width=%q height=%q", ws, hs)
	}
	w, werr := strconv.Atoi(strings.TrimSpace(ws))
	h, herr := strconv.Atoi(strings.TrimSpace(hs))
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		return 0, 0, newLoadError(ErrInvalidDimensions, path).withDetail("width=%q height=%q", ws, hs)
	}
	if !tilemap.CellsFit(w, h) {
		return 0, 0, newLoadError(ErrInvalidDimensions, path).withDetail("%dx%d exceeds %d cells", w, h, tilemap.MaxCells)
	}
	return w, h, nil
}

func tileSize(root xml.StartElement) (int, int, bool) {
	ws, wok := attr(root, "tilewidth")
	hs, hok := attr(root, "tileheight")
	if !wok || !hok {
		return 0, 0, false
	}
	w, werr := strconv.Atoi(ws)
	h, herr := strconv.Atoi(hs)
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		glog.V(2).Infof("ignoring unusable tile size %q x %q", ws, hs)
		return 0, 0, false
	}
	return w, h, true
}

func checkData(l *rawLayer, idx int, path string) *LoadError {
	if len(l.Data) == 0 {
		return newLoadError(ErrMissingLayerData, path).withLayer(idx, l.Name)
	}
	d := l.Data[0]
	glog.V(2).Infof("tmx %s: layer %d %q: encoding=%q compression=%q", path, idx, l.Name, d.Encoding, d.Compression)
	if d.Encoding != "" && d.Encoding != "csv" {
		return newLoadError(ErrUnsupportedEncoding, path).withLayer(idx, l.Name).withDetail("encoding %q, want csv", d.Encoding)
	}
	if d.Compression != "" {
		return newLoadError(ErrUnsupportedCompression, path).withLayer(idx, l.Name).withDetail("compression %q", d.Compression)
	}
	return nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// decodeCSV turns the text of a data block into a row-major id grid.
func decodeCSV(text string, width, height int) ([]int, *LoadError) {
	want := width * height
	csv := stripSpace(text)

	var tokens []string
	if csv != "" {
		tokens = strings.Split(csv, ",")
	}
	if len(tokens) != want {
		e := newLoadError(ErrTileCountMismatch, "")
		e.Found, e.Expected = len(tokens), want
		return nil, e
	}

	ids := make([]int, want)
	for idx, tok := range tokens {
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, newLoadError(ErrInvalidTileID, "").withCell(idx%width, idx/width).withDetail("index %d: %q", idx, tok)
		}
		ids[idx] = id
	}
	return ids, nil
}
