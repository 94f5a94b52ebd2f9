package segment

import "image"

// dirs lists the 8 neighbours counterclockwise (y grows downward), starting east.
var dirs = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

const dirWest = 4

func dirIndex(d image.Point) int {
	for i, v := range dirs {
		if v == d {
			return i
		}
	}
	return 0
}

// blob is one external 8-connected foreground component.
type blob struct {
	minX, minY, maxX, maxY int
	startX, startY         int // first pixel in raster order
	order                  int
}

func (b blob) region(area float64) Region {
	return Region{X: b.minX, Y: b.minY, Width: b.maxX - b.minX + 1, Height: b.maxY - b.minY + 1, Area: area}
}

// outside marks background pixels 4-connected to the canvas border.
func outside(m *mask) []bool {
	out := make([]bool, m.w*m.h)
	queue := make([]int, 0, 2*(m.w+m.h))
	push := func(x, y int) {
		i := y*m.w + x
		if m.fg[i] || out[i] {
			return
		}
		out[i] = true
		queue = append(queue, i)
	}
	for x := 0; x < m.w; x++ {
		push(x, 0)
		push(x, m.h-1)
	}
	for y := 0; y < m.h; y++ {
		push(0, y)
		push(m.w-1, y)
	}
	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%m.w, i/m.w
		if x > 0 {
			push(x-1, y)
		}
		if x < m.w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < m.h-1 {
			push(x, y+1)
		}
	}
	return out
}

// externalBlobs labels 8-connected foreground components and returns the
// ones reachable from the canvas border; components nested inside holes
// of another component are skipped.
func externalBlobs(m *mask) []blob {
	out := outside(m)
	seen := make([]bool, m.w*m.h)
	var blobs []blob
	var stack []int
	for sy := 0; sy < m.h; sy++ {
		for sx := 0; sx < m.w; sx++ {
			si := sy*m.w + sx
			if !m.fg[si] || seen[si] {
				continue
			}
			b := blob{minX: sx, minY: sy, maxX: sx, maxY: sy, startX: sx, startY: sy}
			external := false
			seen[si] = true
			stack = append(stack[:0], si)
			for len(stack) > 0 {
				i := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := i%m.w, i/m.w
				b.minX, b.maxX = min(b.minX, x), max(b.maxX, x)
				b.minY, b.maxY = min(b.minY, y), max(b.maxY, y)
				if !external && touchesOutside(m, out, x, y) {
					external = true
				}
				for _, d := range dirs {
					nx, ny := x+d.X, y+d.Y
					if !m.at(nx, ny) {
						continue
					}
					ni := ny*m.w + nx
					if seen[ni] {
						continue
					}
					seen[ni] = true
					stack = append(stack, ni)
				}
			}
			if external {
				b.order = len(blobs)
				blobs = append(blobs, b)
			}
		}
	}
	return blobs
}

func touchesOutside(m *mask, out []bool, x, y int) bool {
	if x == 0 || y == 0 || x == m.w-1 || y == m.h-1 {
		return true
	}
	return out[y*m.w+x-1] || out[y*m.w+x+1] || out[(y-1)*m.w+x] || out[(y+1)*m.w+x]
}

// contourArea follows the outer border of the component starting at its
// first raster pixel and returns the enclosed polygon area, measured
// through pixel centres. A filled w*h rectangle yields (w-1)*(h-1).
func contourArea(m *mask, sx, sy int) float64 {
	start := image.Pt(sx, sy)
	// Clockwise from the west neighbour (background by raster order)
	// locates the last border pixel of the counterclockwise walk.
	last := image.Point{}
	found := false
	for k := 0; k < 8; k++ {
		q := start.Add(dirs[(dirWest-k+8)%8])
		if m.at(q.X, q.Y) {
			last, found = q, true
			break
		}
	}
	if !found {
		return 0
	}
	cur, back := start, last
	twice := 0
	limit := 4*m.w*m.h + 8
	for steps := 0; steps < limit; steps++ {
		d := dirIndex(back.Sub(cur))
		next := back
		for k := 1; k <= 8; k++ {
			q := cur.Add(dirs[(d+k)%8])
			if m.at(q.X, q.Y) {
				next = q
				break
			}
		}
		twice += cur.X*next.Y - next.X*cur.Y
		if next == start && cur == last {
			break
		}
		back, cur = cur, next
	}
	if twice < 0 {
		twice = -twice
	}
	return float64(twice) / 2
}
