package detect

// binaryMask is a single-channel 0/255 image produced by HSV thresholding.
type binaryMask struct {
	width  int
	height int
	pix    []uint8
}

func newBinaryMask(width, height int) *binaryMask {
	return &binaryMask{width: width, height: height, pix: make([]uint8, width*height)}
}

func (m *binaryMask) at(x, y int) bool {
	return m.pix[y*m.width+x] != 0
}

func (m *binaryMask) set(x, y int) {
	m.pix[y*m.width+x] = 255
}

// kernelRadius is half the side of the 5x5 square structuring element.
const kernelRadius = 2

// erode keeps a pixel only if every in-bounds pixel under the structuring
// element is set. The window is clipped at the image border, so a mask
// covering the whole frame is unchanged.
func erode(m *binaryMask) *binaryMask {
	out := newBinaryMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.at(x, y) && windowAllSet(m, x, y) {
				out.set(x, y)
			}
		}
	}
	return out
}

// dilate sets a pixel if any in-bounds pixel under the structuring element is set.
func dilate(m *binaryMask) *binaryMask {
	out := newBinaryMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if windowAnySet(m, x, y) {
				out.set(x, y)
			}
		}
	}
	return out
}

func windowAllSet(m *binaryMask, cx, cy int) bool {
	for y := maxInt(cy-kernelRadius, 0); y <= minInt(cy+kernelRadius, m.height-1); y++ {
		for x := maxInt(cx-kernelRadius, 0); x <= minInt(cx+kernelRadius, m.width-1); x++ {
			if !m.at(x, y) {
				return false
			}
		}
	}
	return true
}

func windowAnySet(m *binaryMask, cx, cy int) bool {
	for y := maxInt(cy-kernelRadius, 0); y <= minInt(cy+kernelRadius, m.height-1); y++ {
		for x := maxInt(cx-kernelRadius, 0); x <= minInt(cx+kernelRadius, m.width-1); x++ {
			if m.at(x, y) {
				return true
			}
		}
	}
	return false
}

// open removes isolated noise blobs smaller than the structuring element.
func open(m *binaryMask) *binaryMask {
	return dilate(erode(m))
}

// close fills small holes inside larger blobs.
func closeMask(m *binaryMask) *binaryMask {
	return erode(dilate(m))
}

// cleanup is the standard mask cleanup: open then close.
func cleanup(m *binaryMask) *binaryMask {
	return closeMask(open(m))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
