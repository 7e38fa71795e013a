// Package thumbnail keeps stored avatar images within MaxSize pixels.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// MaxSize bounds both dimensions of a normalized image.
const MaxSize = 300

// MaxSourcePixels caps the declared size of an image accepted for decoding.
const MaxSourcePixels = 50_000_000

var errTooLarge = errors.New("image dimensions exceed limit")

// ErrDecode matches any *DecodeError via errors.Is.
var ErrDecode = errors.New("cannot decode image")

// DecodeError reports a file that is missing or is not a readable image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Normalize downsamples the image at path so that neither side exceeds
// MaxSize, keeping the aspect ratio, and overwrites it in place. Images that
// already fit are left untouched; resized reports whether the file was rewritten.
func Normalize(path string) (resized bool, err error) {
	if _, err := Check(path); err != nil {
		return false, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return false, &DecodeError{Path: path, Err: err}
	}

	b := img.Bounds()
	if b.Dx() <= MaxSize && b.Dy() <= MaxSize {
		return false, nil
	}

	thumb := imaging.Fit(img, MaxSize, MaxSize, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		return false, fmt.Errorf("save thumbnail %q: %w", path, err)
	}
	return true, nil
}

// Check reads only the image header at path and returns its size. Files that
// are not images, or declare more than MaxSourcePixels, fail with a *DecodeError.
func Check(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, &DecodeError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, &DecodeError{Path: path, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return image.Point{}, &DecodeError{
			Path: path,
			Err:  fmt.Errorf("%w: %dx%d", errTooLarge, cfg.Width, cfg.Height),
		}
	}
	return image.Point{X: cfg.Width, Y: cfg.Height}, nil
}

// Supported reports whether filename carries an extension Normalize can write back.
func Supported(filename string) bool {
	_, err := imaging.FormatFromFilename(filename)
	return err == nil
}
