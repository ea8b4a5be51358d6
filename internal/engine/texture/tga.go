package texture

import (
	"errors"
	"fmt"
	"image"
)

const (
	tgaHeaderSize = 18

	tgaTrueColor    = 2
	tgaTrueColorRLE = 10

	// tgaTopDown is set in the descriptor when rows are stored top to bottom.
	tgaTopDown = 0x20
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes uncompressed or RLE compressed true-color TGA data with
// 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	kind := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])

	if data[1] != 0 {
		return nil, errors.New("tga: color-mapped images are not supported")
	}
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	start := tgaHeaderSize + int(data[0])
	if start > len(data) {
		return nil, errTGATruncated
	}

	w := tgaWriter{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		stride:  bpp / 8,
		topDown: data[17]&tgaTopDown != 0,
	}
	src := data[start:]

	var err error
	if kind == tgaTrueColor {
		err = w.raw(src)
	} else {
		err = w.rle(src)
	}
	if err != nil {
		return nil, err
	}
	return w.img, nil
}

// tgaWriter places BGR(A) pixels into the image in file order.
type tgaWriter struct {
	img     *image.RGBA
	stride  int
	topDown bool
	next    int
}

func (w *tgaWriter) total() int {
	b := w.img.Bounds()
	return b.Dx() * b.Dy()
}

func (w *tgaWriter) put(px []byte) {
	width := w.img.Bounds().Dx()
	x, y := w.next%width, w.next/width
	if !w.topDown {
		y = w.img.Bounds().Dy() - 1 - y
	}

	i := w.img.PixOffset(x, y)
	w.img.Pix[i+0] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	w.img.Pix[i+3] = 255
	if w.stride == 4 {
		w.img.Pix[i+3] = px[3]
	}
	w.next++
}

func (w *tgaWriter) raw(src []byte) error {
	if len(src) < w.total()*w.stride {
		return errTGATruncated
	}
	for w.next < w.total() {
		off := w.next * w.stride
		w.put(src[off : off+w.stride])
	}
	return nil
}

// rle decodes run-length packets. A set high bit repeats one pixel, otherwise
// the packet is followed by count literal pixels. Short input leaves the
// remaining pixels transparent.
func (w *tgaWriter) rle(src []byte) error {
	for w.next < w.total() && len(src) > 0 {
		header := src[0]
		src = src[1:]
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			if len(src) < w.stride {
				return nil
			}
			px := src[:w.stride]
			src = src[w.stride:]
			for ; count > 0 && w.next < w.total(); count-- {
				w.put(px)
			}
			continue
		}

		for ; count > 0 && w.next < w.total(); count-- {
			if len(src) < w.stride {
				return nil
			}
			w.put(src[:w.stride])
			src = src[w.stride:]
		}
	}
	return nil
}
