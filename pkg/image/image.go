package image

import (
	"fmt"
	stdimage "image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const DefaultJPEGQuality = 85

// MaxUploadWidth bounds stored uploads; larger images are scaled down.
const MaxUploadWidth = 1600

func Decode(r io.Reader) (stdimage.Image, string, error) {
	img, format, err := stdimage.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	return img, format, nil
}

func Resize(src stdimage.Image, width, height int) stdimage.Image {
	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return dst
}

// Shrink scales the image down to maxWidth, preserving the aspect ratio.
// Images at or under maxWidth come back untouched.
func Shrink(src stdimage.Image, maxWidth int) stdimage.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	ratio := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)

	return Resize(src, maxWidth, height)
}

func DetermineExtension(source, format string) string {
	ext := strings.ToLower(filepath.Ext(source))
	if ext == "" {
		ext = "." + strings.ToLower(format)
	}

	switch ext {
	case ".jpeg":
		return ".jpg"
	case ".jpg", ".png":
		return ext
	default:
		if format == "png" {
			return ".png"
		}

		return ".jpg"
	}
}

func BuildFileName(slug, ext, fallback string) string {
	trimmed := strings.TrimSpace(slug)

	cleaned := strings.Trim(trimmed, "/")
	if cleaned == "" {
		cleaned = fallback
	}

	cleaned = strings.ReplaceAll(cleaned, " ", "-")

	return cleaned + ext
}

func Save(path string, img stdimage.Image, ext string, quality int) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	switch ext {
	case ".png":
		encoder := &png.Encoder{CompressionLevel: png.DefaultCompression}

		return encoder.Encode(fh, img)
	default:
		options := &jpeg.Options{Quality: quality}

		return jpeg.Encode(fh, img, options)
	}
}

func MIMEFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
