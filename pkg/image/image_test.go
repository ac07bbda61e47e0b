package image

import (
	"bytes"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidImage(width, height int) stdimage.Image {
	return stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
}

func TestShrinkPreservesAspectRatio(t *testing.T) {
	shrunk := Shrink(solidImage(3200, 1600), MaxUploadWidth)

	bounds := shrunk.Bounds()
	if bounds.Dx() != MaxUploadWidth || bounds.Dy() != 800 {
		t.Fatalf("expected 1600x800 got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestShrinkLeavesSmallImagesAlone(t *testing.T) {
	src := solidImage(400, 300)

	if Shrink(src, MaxUploadWidth) != src {
		t.Fatalf("small images should come back untouched")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(10, 10)); err != nil {
		t.Fatalf("encode err: %v", err)
	}

	img, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}

	if format != "png" || img.Bounds().Dx() != 10 {
		t.Fatalf("decode mismatch: %s %v", format, img.Bounds())
	}

	if _, _, err = Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatalf("garbage should not decode")
	}
}

func TestDetermineExtension(t *testing.T) {
	cases := []struct {
		source string
		format string
		want   string
	}{
		{"photo.jpeg", "jpeg", ".jpg"},
		{"photo.JPG", "jpeg", ".jpg"},
		{"icon.png", "png", ".png"},
		{"noext", "png", ".png"},
		{"noext", "jpeg", ".jpg"},
		{"odd.webp", "png", ".png"},
		{"odd.webp", "gif", ".jpg"},
	}

	for _, tc := range cases {
		if got := DetermineExtension(tc.source, tc.format); got != tc.want {
			t.Fatalf("DetermineExtension(%q, %q) = %q, want %q", tc.source, tc.format, got, tc.want)
		}
	}
}

func TestBuildFileName(t *testing.T) {
	if got := BuildFileName("my upload", ".jpg", "upload"); got != "my-upload.jpg" {
		t.Fatalf("expected my-upload.jpg got %s", got)
	}

	if got := BuildFileName("  /  ", ".png", "upload"); got != "upload.png" {
		t.Fatalf("expected the fallback name got %s", got)
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	if err := Save(path, solidImage(4, 4), ".png", DefaultJPEGQuality); err != nil {
		t.Fatalf("save err: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty file, err=%v", err)
	}
}

func TestMIMEFromExtension(t *testing.T) {
	if got := MIMEFromExtension(".JPG"); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg got %s", got)
	}

	if got := MIMEFromExtension(".png"); got != "image/png" {
		t.Fatalf("expected image/png got %s", got)
	}
}
