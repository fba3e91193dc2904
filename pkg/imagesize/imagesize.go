// Package imagesize measures icon dimensions without decoding pixel data.
package imagesize

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for formats that cannot be measured (e.g. svg)
var ErrUnsupported = errors.New("unsupported image format")

// Size is an image's pixel dimensions
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// IsSquare reports whether width equals height
func (s Size) IsSquare() bool { return s.Width == s.Height }

// SmallerThan reports whether either dimension is below min
func (s Size) SmallerThan(min int) bool { return s.Width < min || s.Height < min }

// Measure returns the dimensions of the image at path. ICO files report
// their largest frame.
func Measure(path string) (Size, error) {
	f, err := os.Open(path) // #nosec G304 -- paths come from the asset tree walk
	if err != nil {
		return Size{}, err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return measureICO(f)
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return Size{}, ErrUnsupported
	}

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return Size{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// icoHeader is the ICONDIR structure
type icoHeader struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

// icoEntry is the ICONDIRENTRY structure
type icoEntry struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

// measureICO reads the icon directory and returns the largest frame
func measureICO(r io.Reader) (Size, error) {
	var hdr icoHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return Size{}, fmt.Errorf("failed to read ico header: %w", err)
	}
	if hdr.Reserved != 0 || hdr.Type != 1 || hdr.Count == 0 {
		return Size{}, fmt.Errorf("not an ico file")
	}

	var best Size
	for i := 0; i < int(hdr.Count); i++ {
		var e icoEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return Size{}, fmt.Errorf("failed to read ico entry %d: %w", i, err)
		}
		// 0 encodes 256
		w, h := int(e.Width), int(e.Height)
		if w == 0 {
			w = 256
		}
		if h == 0 {
			h = 256
		}
		if w*h > best.Width*best.Height {
			best = Size{Width: w, Height: h}
		}
	}
	return best, nil
}
