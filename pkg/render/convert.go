package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Raster formats a [Rasterizer] can produce.
const (
	PNG = "png"
	PDF = "pdf"
)

// ErrNoRasterizer is returned when the rsvg-convert binary is missing.
var ErrNoRasterizer = errors.New("rsvg-convert not found (brew install librsvg, apt install librsvg2-bin)")

// Rasterizer converts SVG documents by piping them through rsvg-convert.
type Rasterizer struct {
	// Bin is the executable name or path.
	Bin string

	// Background is painted behind PNG output. Empty keeps transparency.
	Background string
}

// DefaultRasterizer looks up rsvg-convert on PATH and renders PNGs on white.
var DefaultRasterizer = Rasterizer{Bin: "rsvg-convert", Background: "white"}

// Available reports whether r.Bin can be executed.
func (r Rasterizer) Available() bool {
	_, err := exec.LookPath(r.Bin)
	return err == nil
}

// Convert renders svg as format. scale only applies to PNG; values <= 0
// mean 1.
func (r Rasterizer) Convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	args := []string{"--format", format}
	switch format {
	case PNG:
		if scale <= 0 {
			scale = 1
		}
		args = append(args, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
		if r.Background != "" {
			args = append(args, "--background-color", r.Background)
		}
	case PDF:
	default:
		return nil, fmt.Errorf("rasterize: unsupported format %q", format)
	}

	bin, err := exec.LookPath(r.Bin)
	if err != nil {
		return nil, ErrNoRasterizer
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("rsvg-convert %s: %w: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}

// Available reports whether the default rasterizer is installed.
func Available() bool { return DefaultRasterizer.Available() }

// ToPNG converts svg to PNG with the default rasterizer.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return DefaultRasterizer.Convert(ctx, svg, PNG, scale)
}

// ToPDF converts svg to PDF with the default rasterizer.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return DefaultRasterizer.Convert(ctx, svg, PDF, 0)
}
