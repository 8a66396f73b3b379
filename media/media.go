// Package media prepares hero images for embedding: uploaded files are
// scaled down to email width and video posters get a play button.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/image/draw"
)

// MaxHeroWidth is the widest hero image embedded in an email.
const MaxHeroWidth = 1200

// Video thumbnails are rendered at 720p.
const (
	ThumbWidth  = 1280
	ThumbHeight = 720
)

var ErrNotImage = errors.New("media: not an image")

const jpegQuality = 90

// HeroDataURL returns data as a data: URL. Images wider than maxWidth are
// scaled down proportionally and re-encoded; smaller ones are embedded
// untouched.
func HeroDataURL(data []byte, maxWidth int) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mime)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return DataURL(mime, data), nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("media: decode: %w", err)
	}
	height := (cfg.Height*maxWidth + cfg.Width/2) / cfg.Width
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	out, mime, err := encode(dst, mime)
	if err != nil {
		return "", err
	}
	return DataURL(mime, out), nil
}

// encode writes JPEG sources back as JPEG and everything else as PNG.
func encode(img image.Image, mime string) ([]byte, string, error) {
	var buf bytes.Buffer
	if mime == "image/jpeg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, "", fmt.Errorf("media: encode jpeg: %w", err)
		}
		return buf.Bytes(), mime, nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("media: encode png: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// VideoThumbnail scales poster to 1280x720 and paints a play button in the
// centre. The result is a JPEG data URL.
func VideoThumbnail(poster []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(poster))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	c := image.Pt(ThumbWidth/2, ThumbHeight/2)
	fill(dst, &circle{c, 80}, color.NRGBA{A: 102})
	fill(dst, &circle{c, 70}, color.NRGBA{R: 255, G: 255, B: 255, A: 204})
	fill(dst, &triangle{
		a: image.Pt(c.X-25, c.Y-40),
		b: image.Pt(c.X-25, c.Y+40),
		c: image.Pt(c.X+50, c.Y),
	}, color.White)

	out, _, err := encode(dst, "image/jpeg")
	if err != nil {
		return "", err
	}
	return DataURL("image/jpeg", out), nil
}

func fill(dst draw.Image, mask image.Image, c color.Color) {
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// circle is an alpha mask that is opaque inside the circle.
type circle struct {
	p image.Point
	r int
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle {
	return image.Rect(c.p.X-c.r, c.p.Y-c.r, c.p.X+c.r, c.p.Y+c.r)
}

func (c *circle) At(x, y int) color.Color {
	xx, yy, rr := float64(x-c.p.X)+0.5, float64(y-c.p.Y)+0.5, float64(c.r)
	if xx*xx+yy*yy < rr*rr {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}

type triangle struct {
	a, b, c image.Point
}

func (t *triangle) ColorModel() color.Model { return color.AlphaModel }

func (t *triangle) Bounds() image.Rectangle {
	r := image.Rectangle{Min: t.a, Max: t.a.Add(image.Pt(1, 1))}
	for _, p := range []image.Point{t.b, t.c} {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

func (t *triangle) At(x, y int) color.Color {
	p := image.Pt(x, y)
	d1, d2, d3 := cross(p, t.a, t.b), cross(p, t.b, t.c), cross(p, t.c, t.a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	if neg && pos {
		return color.Alpha{}
	}
	return color.Alpha{A: 255}
}

func cross(p, a, b image.Point) int {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// VideoLink points the hero image at a hosted player for the video.
func VideoLink(playerURL, videoURI string) string {
	if playerURL == "" {
		return videoURI
	}
	sep := "?"
	if strings.Contains(playerURL, "?") {
		sep = "&"
	}
	return playerURL + sep + "video=" + url.QueryEscape(videoURI)
}
