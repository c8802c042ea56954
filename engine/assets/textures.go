package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
	"golang.org/x/image/draw"
)

// LoadTexture decodes an image file into an RGBA texture. Any decoded color
// model is converted to 8-bit RGBA so downstream consumers never deal with
// paletted or premultiplied formats.
func LoadTexture(path string) (*metadata.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture '%s': %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture '%s': %w", path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &metadata.Texture{
		ID:           uuid.New().String(),
		Name:         name,
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		ChannelCount: 4,
		Pixels:       rgba.Pix,
	}, nil
}
