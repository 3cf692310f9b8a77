package texture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

var (
	// ErrEmptyPath is returned when a load is requested without a path.
	ErrEmptyPath = errors.New("texture: empty path")

	// ErrCubeFaceMismatch is returned when cube faces are not square or differ in size.
	ErrCubeFaceMismatch = errors.New("texture: cube faces must be square and equally sized")
)

// Texture is a decoded image in tightly packed 8-bit RGBA, row-major, top row first.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
}

// BytesPerRow returns the row stride of Pixels.
func (t *Texture) BytesPerRow() int {
	return t.Width * 4
}

// Decode reads a PNG or JPEG image from r and converts it to RGBA.
//
// Parameters:
//   - name: identifier stored on the texture
//   - r: the encoded image stream
//
// Returns:
//   - *Texture: the decoded texture
//   - error: error if the stream is not a supported image
func Decode(name string, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return &Texture{
		Name:   name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (*Texture, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer f.Close()
	return Decode(path, f)
}
