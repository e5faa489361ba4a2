package motograph

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// previewExtensions lists the image formats a preview can be saved in.
var previewExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// encodeImg encodes the preview into w, picking the format from the file
// extension when w is a file and falling back to PNG otherwise.
func encodeImg(w io.Writer, img image.Image) error {
	ext := ".png"
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		ext = strings.ToLower(filepath.Ext(f.Name()))
	}
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format: %q", ext)
	}
}

// savePreview writes the preview image to path.
func savePreview(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the preview file: %w", err)
	}
	if err := encodeImg(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
