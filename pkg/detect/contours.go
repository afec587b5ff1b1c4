package detect

import "math"

// contour describes the outer boundary of one 8-connected blob in a binary
// mask. Area is the blob's pixel count; perimeter is the length of the traced
// outer boundary (orthogonal steps count 1, diagonal steps sqrt 2). Holes
// inside the blob are not descended into.
type contour struct {
	x, y      int // bounding box origin
	w, h      int // bounding box size
	area      float64
	perimeter float64
}

// mooreOffsets enumerates the 8 neighbors of a pixel in clockwise order
// starting at west (screen coordinates, y grows downward).
var mooreOffsets = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// findContours labels the 8-connected components of the mask and returns one
// contour per component, in raster order of each component's first pixel.
func findContours(m *binaryMask) []contour {
	labels := make([]int32, m.width*m.height)
	var contours []contour
	next := int32(0)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			idx := y*m.width + x
			if m.pix[idx] == 0 || labels[idx] != 0 {
				continue
			}
			next++
			c := labelComponent(m, labels, next, x, y)
			c.perimeter = tracePerimeter(m, labels, next, x, y)
			contours = append(contours, c)
		}
	}
	return contours
}

// labelComponent flood-fills the component containing (sx, sy), recording the
// pixel count and bounding box.
func labelComponent(m *binaryMask, labels []int32, id int32, sx, sy int) contour {
	minX, minY, maxX, maxY := sx, sy, sx, sy
	count := 0

	stack := [][2]int{{sx, sy}}
	labels[sy*m.width+sx] = id

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p[0], p[1]
		count++

		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}

		for _, off := range mooreOffsets {
			nx, ny := x+off[0], y+off[1]
			if nx < 0 || ny < 0 || nx >= m.width || ny >= m.height {
				continue
			}
			nidx := ny*m.width + nx
			if m.pix[nidx] != 0 && labels[nidx] == 0 {
				labels[nidx] = id
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}

	return contour{
		x: minX, y: minY,
		w:    maxX - minX + 1,
		h:    maxY - minY + 1,
		area: float64(count),
	}
}

// tracePerimeter walks the outer boundary of component id with Moore-neighbor
// tracing. The walk starts at the component's first pixel in raster order,
// whose west neighbor is guaranteed to be outside the component, and stops
// when it arrives back at the start pixel about to repeat its first move
// (Jacob's stopping criterion). A single isolated pixel has perimeter 0.
func tracePerimeter(m *binaryMask, labels []int32, id int32, sx, sy int) float64 {
	inComponent := func(x, y int) bool {
		if x < 0 || y < 0 || x >= m.width || y >= m.height {
			return false
		}
		return labels[y*m.width+x] == id
	}

	// scan the neighbors of (cx, cy) clockwise starting at direction b and
	// return the first one inside the component
	scan := func(cx, cy, b int) (nx, ny, dir int, ok bool) {
		for i := 0; i < 8; i++ {
			d := (b + i) % 8
			px, py := cx+mooreOffsets[d][0], cy+mooreOffsets[d][1]
			if inComponent(px, py) {
				return px, py, d, true
			}
		}
		return 0, 0, 0, false
	}

	firstX, firstY, firstDir, ok := scan(sx, sy, 0)
	if !ok {
		return 0
	}

	cx, cy := firstX, firstY
	backtrack := nextBacktrack(firstDir)
	perimeter := stepLength(sx, sy, firstX, firstY)
	limit := 4 * (m.width*m.height + 4)

	for steps := 0; steps < limit; steps++ {
		nx, ny, dir, _ := scan(cx, cy, backtrack)
		if cx == sx && cy == sy && nx == firstX && ny == firstY && dir == firstDir {
			break
		}
		perimeter += stepLength(cx, cy, nx, ny)
		backtrack = nextBacktrack(dir)
		cx, cy = nx, ny
	}
	return perimeter
}

// nextBacktrack maps the direction just moved along onto the scan start for
// the next pixel: the neighbor scanned immediately before the hit, which is
// known to lie outside the component. Orthogonal and diagonal moves land that
// neighbor at different offsets in the clockwise ring.
func nextBacktrack(dir int) int {
	if dir%2 == 0 {
		return (dir + 6) % 8
	}
	return (dir + 5) % 8
}

func stepLength(x0, y0, x1, y1 int) float64 {
	if x0 != x1 && y0 != y1 {
		return math.Sqrt2
	}
	return 1
}
