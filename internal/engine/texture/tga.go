// Package texture provides image decoding helpers for material textures.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA image file. Supports uncompressed true-color
// (type 2) and RLE compressed (type 10) files with 24 or 32 bits per
// pixel, the variants commonly produced by modeling tools for map_Kd
// textures.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bytesPerPixel := bpp / 8

	// Bit 5 of the descriptor flags top-to-bottom row order.
	topToBottom := (descriptor & 0x20) != 0

	if imageType == TGATypeUncompressed {
		if len(pixelData) < width*height*bytesPerPixel {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for y := 0; y < height; y++ {
			destY := y
			if !topToBottom {
				destY = height - 1 - y
			}
			for x := 0; x < width; x++ {
				i := (y*width + x) * bytesPerPixel
				img.SetRGBA(x, destY, bgraAt(pixelData, i, bytesPerPixel))
			}
		}
		return img, nil
	}

	decodeTGARLE(img, pixelData, width, height, bytesPerPixel, topToBottom)
	return img, nil
}

// decodeTGARLE decodes RLE-compressed TGA pixel data into an image.
func decodeTGARLE(img *image.RGBA, pixelData []byte, width, height, bytesPerPixel int, topToBottom bool) {
	pixelCount := width * height
	pixelIdx := 0
	dataIdx := 0

	put := func(c color.RGBA) {
		x := pixelIdx % width
		y := pixelIdx / width
		destY := y
		if !topToBottom {
			destY = height - 1 - y
		}
		img.SetRGBA(x, destY, c)
		pixelIdx++
	}

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet: one pixel repeated count times.
			if dataIdx+bytesPerPixel > len(pixelData) {
				return
			}
			c := bgraAt(pixelData, dataIdx, bytesPerPixel)
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(c)
			}
		} else {
			// Raw packet: count literal pixels.
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+bytesPerPixel > len(pixelData) {
					return
				}
				put(bgraAt(pixelData, dataIdx, bytesPerPixel))
				dataIdx += bytesPerPixel
			}
		}
	}
}

// bgraAt reads one BGR(A) pixel from TGA pixel data.
func bgraAt(data []byte, i, bytesPerPixel int) color.RGBA {
	c := color.RGBA{B: data[i], G: data[i+1], R: data[i+2], A: 255}
	if bytesPerPixel == 4 {
		c.A = data[i+3]
	}
	return c
}

// ToRGBA converts any image.Image to *image.RGBA, returning the input
// unchanged when it already is one.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}
