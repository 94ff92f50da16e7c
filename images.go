package sitedesk

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth = 1600
	thumbSize     = 240
	jpegQuality   = 82
	thumbQuality  = 70
	maxUploadSize = 10 << 20 // 10MB
)

// FileSource is one file offered to a photo pipeline, either picked in the
// file chooser or dropped onto the upload area.
type FileSource interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// MemoryFile is a FileSource backed by a byte slice.
type MemoryFile struct {
	FileName string
	Type     string
	Data     []byte
}

func (f MemoryFile) Name() string        { return f.FileName }
func (f MemoryFile) ContentType() string { return f.Type }
func (f MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}

type uploadedFile struct {
	fh *multipart.FileHeader
}

// FromMultipart adapts multipart form files to FileSources.
func FromMultipart(files []*multipart.FileHeader) []FileSource {
	out := make([]FileSource, len(files))
	for i, fh := range files {
		out[i] = uploadedFile{fh: fh}
	}
	return out
}

func (f uploadedFile) Name() string                 { return f.fh.Filename }
func (f uploadedFile) ContentType() string          { return f.fh.Header.Get("Content-Type") }
func (f uploadedFile) Open() (io.ReadCloser, error) { return f.fh.Open() }

// mediaType resolves the MIME type of f, falling back to the file extension
// when the client sent none or a generic one.
func mediaType(f FileSource) string {
	ct := strings.ToLower(strings.TrimSpace(f.ContentType()))
	if ct == "" || ct == "application/octet-stream" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name())))
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

func isImage(f FileSource) bool {
	return strings.HasPrefix(mediaType(f), "image/")
}

// DecodedImage is the embeddable form of an uploaded image.
type DecodedImage struct {
	URL       string // full-size data URL committed with the photo
	Thumbnail string // small data URL shown in the preview list
	Width     int
	Height    int
}

// DecodeFunc turns a file into an embeddable payload. It must return promptly
// with ctx.Err() once ctx is cancelled.
type DecodeFunc func(ctx context.Context, f FileSource) (DecodedImage, error)

// DecodeImage reads f, downscales it to maxImageWidth, and encodes it as a
// JPEG data URL together with a preview thumbnail.
func DecodeImage(ctx context.Context, f FileSource) (DecodedImage, error) {
	rc, err := f.Open()
	if err != nil {
		return DecodedImage{}, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxUploadSize+1))
	if err != nil {
		return DecodedImage{}, fmt.Errorf("read %s: %w", f.Name(), err)
	}
	if len(data) > maxUploadSize {
		return DecodedImage{}, fmt.Errorf("file too large (max 10MB)")
	}
	if err := ctx.Err(); err != nil {
		return DecodedImage{}, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return DecodedImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return DecodedImage{}, fmt.Errorf("decode image: empty image")
	}
	if w > maxImageWidth {
		w, h = maxImageWidth, max(1, h*maxImageWidth/w)
	}
	img = flatten(img, w, h)
	if err := ctx.Err(); err != nil {
		return DecodedImage{}, err
	}

	full, err := jpegDataURL(img, jpegQuality)
	if err != nil {
		return DecodedImage{}, err
	}
	thumb, err := jpegDataURL(resize.Thumbnail(thumbSize, thumbSize, img, resize.Lanczos3), thumbQuality)
	if err != nil {
		return DecodedImage{}, err
	}
	return DecodedImage{URL: full, Thumbnail: thumb, Width: w, Height: h}, nil
}

// flatten scales img to w x h over an opaque white canvas. JPEG has no alpha
// channel, so transparent pixels would otherwise encode as black.
func flatten(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	}
	return dst
}

func jpegDataURL(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
