package segment

import "image"

// mask is a row-major binary image; true marks foreground.
type mask struct {
	w, h int
	fg   []bool
}

func (m *mask) at(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.fg[y*m.w+x]
}

// luma returns 8-bit BT.601 intensity (14-bit fixed point, rounded).
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*4899 + uint32(g)*9617 + uint32(b)*1868 + 8192) >> 14)
}

// binarize marks every pixel whose intensity is <= threshold as foreground.
// Alpha is ignored.
func binarize(img image.Image, threshold uint8) *mask {
	b := img.Bounds()
	m := &mask{w: b.Dx(), h: b.Dy(), fg: make([]bool, b.Dx()*b.Dy())}
	switch src := img.(type) {
	case *image.RGBA:
		binarizePix(m, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), threshold)
	case *image.NRGBA:
		binarizePix(m, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), threshold)
	default:
		for y := 0; y < m.h; y++ {
			for x := 0; x < m.w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				m.fg[y*m.w+x] = luma(uint8(r>>8), uint8(g>>8), uint8(bl>>8)) <= threshold
			}
		}
	}
	return m
}

// binarizePix handles 4-byte-per-pixel RGB-first layouts.
func binarizePix(m *mask, pix []byte, stride, off int, threshold uint8) {
	for y := 0; y < m.h; y++ {
		row := off + y*stride
		for x := 0; x < m.w; x++ {
			i := row + x*4
			m.fg[y*m.w+x] = luma(pix[i], pix[i+1], pix[i+2]) <= threshold
		}
	}
}
