package lowpoly

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// epsilon is the distance below which two points are considered identical.
var epsilon = math.Nextafter(1, 2) - 1

// Triangle holds the indices of its three vertices in the point slice the
// triangulation was computed from.
type Triangle [3]int

// Delaunay is the Delaunay triangulation of a point set.
//
// Triangles lists three point indices per triangle. Halfedges[e] is the index
// of the half-edge opposite to e in the adjacent triangle, or -1 for hull
// edges. Hull lists the indices of the convex hull points in order.
type Delaunay struct {
	Triangles []int
	Halfedges []int
	Hull      []int

	points []Point
}

// Triangulate computes the Delaunay triangulation of points using a sweep-hull
// algorithm: points are inserted by increasing distance from a seed triangle,
// attached to the visible part of the advancing hull and legalized by edge
// flips.
//
// Ties are resolved deterministically. Points at equal distance are inserted by
// index, an edge is flipped only when the opposite point lies strictly inside
// the circumcircle, and points that coincide with an inserted point are
// skipped. Collinear input produces no triangles.
func Triangulate(points []Point) (*Delaunay, error) {
	if len(points) < 3 {
		return nil, errors.Wrapf(ErrDegenerateInput, "need at least 3 points, got %d", len(points))
	}
	s := newSweep(points)
	s.run()

	return &Delaunay{
		Triangles: s.triangles[:s.trianglesLen],
		Halfedges: s.halfedges[:s.trianglesLen],
		Hull:      s.hull,
		points:    points,
	}, nil
}

// Len returns the number of triangles.
func (d *Delaunay) Len() int {
	return len(d.Triangles) / 3
}

// Triangle returns the i-th triangle.
func (d *Delaunay) Triangle(i int) Triangle {
	return Triangle{d.Triangles[3*i], d.Triangles[3*i+1], d.Triangles[3*i+2]}
}

// Validate runs sanity checks on the triangulation: half-edges must be
// symmetric and the triangles must exactly cover the hull polygon.
func (d *Delaunay) Validate() error {
	for e1, e2 := range d.Halfedges {
		if e2 != -1 && d.Halfedges[e2] != e1 {
			return errors.Errorf("half-edge %d points to %d which points to %d", e1, e2, d.Halfedges[e2])
		}
	}
	for _, i := range d.Triangles {
		if i < 0 || i >= len(d.points) {
			return errors.Errorf("triangle index %d out of range", i)
		}
	}

	hull := make([]Point, len(d.Hull))
	for i, id := range d.Hull {
		hull[i] = d.points[id]
	}
	hullArea := math.Abs(polygonArea(hull))

	var sum float64
	for i := 0; i < d.Len(); i++ {
		t := d.Triangle(i)
		sum += math.Abs(triangleArea(d.points[t[0]], d.points[t[1]], d.points[t[2]]))
	}
	if math.Abs(hullArea-sum) > 1e-9*math.Max(1, hullArea) {
		return errors.Errorf("hull area %g does not match triangle area %g", hullArea, sum)
	}
	return nil
}

// sweep holds the working state of one triangulation.
type sweep struct {
	points []Point

	triangles    []int
	halfedges    []int
	trianglesLen int

	hullPrev  []int
	hullNext  []int
	hullTri   []int
	hullHash  []int
	hullStart int
	hashSize  int
	hull      []int

	cx, cy float64
	stack  []int
}

func newSweep(points []Point) *sweep {
	n := len(points)
	maxTriangles := 2*n - 5
	if maxTriangles < 0 {
		maxTriangles = 0
	}
	hashSize := int(math.Ceil(math.Sqrt(float64(n))))

	return &sweep{
		points:    points,
		triangles: make([]int, maxTriangles*3),
		halfedges: make([]int, maxTriangles*3),
		hullPrev:  make([]int, n),
		hullNext:  make([]int, n),
		hullTri:   make([]int, n),
		hullHash:  make([]int, hashSize),
		hashSize:  hashSize,
		stack:     make([]int, 0, 512),
	}
}

func (s *sweep) run() {
	pts := s.points
	n := len(pts)

	// Points sharing the exact same position are coalesced into the first
	// of them.
	seen := make(map[Point]struct{}, n)
	ids := make([]int, 0, n)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range pts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		ids = append(ids, i)

		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	center := Point{(minX + maxX) / 2, (minY + maxY) / 2}

	// Seed point closest to the center of the bounding box.
	i0, i1, i2 := ids[0], ids[0], ids[0]
	minDist := math.Inf(1)
	for _, i := range ids {
		if d := dist(center, pts[i]); d < minDist {
			i0, minDist = i, d
		}
	}
	p0 := pts[i0]

	// The point closest to the seed.
	minDist = math.Inf(1)
	for _, i := range ids {
		if i == i0 {
			continue
		}
		if d := dist(p0, pts[i]); d < minDist && d > 0 {
			i1, minDist = i, d
		}
	}
	p1 := pts[i1]

	// The third point forms the smallest circumcircle with the first two.
	minRadius := math.Inf(1)
	for _, i := range ids {
		if i == i0 || i == i1 {
			continue
		}
		if r := circumradius(p0, p1, pts[i]); r < minRadius {
			i2, minRadius = i, r
		}
	}

	if math.IsInf(minRadius, 1) {
		s.collinear(ids)
		return
	}
	p2 := pts[i2]

	if orient(p0, p1, p2) {
		i1, i2 = i2, i1
		p1, p2 = p2, p1
	}

	cc := circumcenter(p0, p1, p2)
	s.cx, s.cy = cc.X, cc.Y

	dists := make([]float64, n)
	for _, i := range ids {
		dists[i] = dist(cc, pts[i])
	}
	sort.SliceStable(ids, func(a, b int) bool {
		return dists[ids[a]] < dists[ids[b]]
	})

	s.hullStart = i0
	hullSize := 3

	s.hullNext[i0], s.hullPrev[i2] = i1, i1
	s.hullNext[i1], s.hullPrev[i0] = i2, i2
	s.hullNext[i2], s.hullPrev[i1] = i0, i0

	s.hullTri[i0] = 0
	s.hullTri[i1] = 1
	s.hullTri[i2] = 2

	for i := range s.hullHash {
		s.hullHash[i] = -1
	}
	s.hullHash[s.hashKey(p0)] = i0
	s.hullHash[s.hashKey(p1)] = i1
	s.hullHash[s.hashKey(p2)] = i2

	s.addTriangle(i0, i1, i2, -1, -1, -1)

	var prev Point
	for k, i := range ids {
		p := pts[i]

		// Skip points that coincide with the previous one.
		if k > 0 && math.Abs(p.X-prev.X) <= epsilon && math.Abs(p.Y-prev.Y) <= epsilon {
			continue
		}
		prev = p

		if i == i0 || i == i1 || i == i2 {
			continue
		}

		// Find a visible edge on the hull using the edge hash.
		start := 0
		key := s.hashKey(p)
		for j := 0; j < s.hashSize; j++ {
			start = s.hullHash[(key+j)%s.hashSize]
			if start != -1 && start != s.hullNext[start] {
				break
			}
		}
		if start == -1 || start == s.hullNext[start] {
			start = s.hullStart
		}

		start = s.hullPrev[start]
		e := start
		for {
			q := s.hullNext[e]
			if orient(p, pts[e], pts[q]) {
				break
			}
			e = q
			if e == start {
				e = -1
				break
			}
		}
		if e == -1 {
			// Most likely a near duplicate of a hull point.
			continue
		}

		// Add the first triangle from the point.
		t := s.addTriangle(e, i, s.hullNext[e], -1, -1, s.hullTri[e])

		// Recursively flip triangles from the point until they satisfy the
		// Delaunay condition.
		s.hullTri[i] = s.legalize(t + 2)
		s.hullTri[e] = t
		hullSize++

		// Walk forward through the hull, adding more triangles and flipping.
		next := s.hullNext[e]
		for {
			q := s.hullNext[next]
			if !orient(p, pts[next], pts[q]) {
				break
			}
			t = s.addTriangle(next, i, q, s.hullTri[i], -1, s.hullTri[next])
			s.hullTri[i] = s.legalize(t + 2)
			s.hullNext[next] = next
			hullSize--
			next = q
		}

		// Walk backward from the other side.
		if e == start {
			for {
				q := s.hullPrev[e]
				if !orient(p, pts[q], pts[e]) {
					break
				}
				t = s.addTriangle(q, i, e, -1, s.hullTri[e], s.hullTri[q])
				s.legalize(t + 2)
				s.hullTri[q] = t
				s.hullNext[e] = e
				hullSize--
				e = q
			}
		}

		s.hullStart = e
		s.hullPrev[i] = e
		s.hullNext[e] = i
		s.hullPrev[next] = i
		s.hullNext[i] = next

		s.hullHash[s.hashKey(p)] = i
		s.hullHash[s.hashKey(pts[e])] = e
	}

	s.hull = make([]int, 0, hullSize)
	for i, e := 0, s.hullStart; i < hullSize; i++ {
		s.hull = append(s.hull, e)
		e = s.hullNext[e]
	}
}

// collinear handles input without any non-degenerate triangle: the hull is
// the list of distinct points ordered along the line.
func (s *sweep) collinear(ids []int) {
	pts := s.points
	dists := make([]float64, len(pts))
	for _, i := range ids {
		d := pts[i].X - pts[0].X
		if d == 0 {
			d = pts[i].Y - pts[0].Y
		}
		dists[i] = d
	}
	sort.SliceStable(ids, func(a, b int) bool {
		return dists[ids[a]] < dists[ids[b]]
	})

	d0 := math.Inf(-1)
	for _, id := range ids {
		if d := dists[id]; d > d0 {
			s.hull = append(s.hull, id)
			d0 = d
		}
	}
	s.trianglesLen = 0
}

func (s *sweep) hashKey(p Point) int {
	return int(math.Floor(pseudoAngle(p.X-s.cx, p.Y-s.cy)*float64(s.hashSize))) % s.hashSize
}

// legalize flips the edge a and its neighbours until every affected triangle
// satisfies the empty circumcircle property. It returns the half-edge that
// ends at the inserted point.
func (s *sweep) legalize(a int) int {
	var ar int
	s.stack = s.stack[:0]

	for {
		b := s.halfedges[a]

		/* If the pair of triangles doesn't satisfy the Delaunay condition
		 * (p1 is inside the circumcircle of [p0, pl, pr]), flip them,
		 * then do the same check/flip recursively for the new pair of triangles
		 *
		 *           pl                    pl
		 *          /||\                  /  \
		 *       al/ || \bl            al/    \a
		 *        /  ||  \              /      \
		 *       /  a||b  \    flip    /___ar___\
		 *     p0\   ||   /p1   =>   p0\---bl---/p1
		 *        \  ||  /              \      /
		 *       ar\ || /br             b\    /br
		 *          \||/                  \  /
		 *           pr                    pr
		 */
		a0 := a - a%3
		ar = a0 + (a+2)%3

		if b == -1 {
			// Convex hull edge.
			if len(s.stack) == 0 {
				break
			}
			a = s.pop()
			continue
		}

		b0 := b - b%3
		al := a0 + (a+1)%3
		bl := b0 + (b+2)%3

		p0 := s.triangles[ar]
		pr := s.triangles[a]
		pl := s.triangles[al]
		p1 := s.triangles[bl]

		if inCircle(s.points[p0], s.points[pr], s.points[pl], s.points[p1]) {
			s.triangles[a] = p1
			s.triangles[b] = p0

			hbl := s.halfedges[bl]

			// The edge was swapped on the other side of the hull; fix the
			// half-edge reference kept for that hull point.
			if hbl == -1 {
				e := s.hullStart
				for {
					if s.hullTri[e] == bl {
						s.hullTri[e] = a
						break
					}
					e = s.hullPrev[e]
					if e == s.hullStart {
						break
					}
				}
			}
			s.link(a, hbl)
			s.link(b, s.halfedges[ar])
			s.link(ar, bl)

			br := b0 + (b+1)%3
			s.stack = append(s.stack, br)
		} else {
			if len(s.stack) == 0 {
				break
			}
			a = s.pop()
		}
	}
	return ar
}

func (s *sweep) pop() int {
	a := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return a
}

func (s *sweep) link(a, b int) {
	s.halfedges[a] = b
	if b != -1 {
		s.halfedges[b] = a
	}
}

func (s *sweep) addTriangle(i0, i1, i2, a, b, c int) int {
	t := s.trianglesLen

	s.triangles[t] = i0
	s.triangles[t+1] = i1
	s.triangles[t+2] = i2

	s.link(t, a)
	s.link(t+1, b)
	s.link(t+2, c)

	s.trianglesLen += 3
	return t
}

// pseudoAngle is a cheap monotonic replacement of the angle of (dx, dy),
// mapped to [0, 1).
func pseudoAngle(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}
	p := dx / (math.Abs(dx) + math.Abs(dy))
	if dy > 0 {
		return (3 - p) / 4
	}
	return (1 + p) / 4
}

func dist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// orient reports whether p, q, r turn counter-clockwise in a y-up frame.
func orient(p, q, r Point) bool {
	return (q.Y-p.Y)*(r.X-q.X)-(q.X-p.X)*(r.Y-q.Y) < 0
}

// inCircle reports whether p lies strictly inside the circumcircle of a, b, c.
func inCircle(a, b, c, p Point) bool {
	dx, dy := a.X-p.X, a.Y-p.Y
	ex, ey := b.X-p.X, b.Y-p.Y
	fx, fy := c.X-p.X, c.Y-p.Y

	ap := dx*dx + dy*dy
	bp := ex*ex + ey*ey
	cp := fx*fx + fy*fy

	return dx*(ey*cp-bp*fy)-dy*(ex*cp-bp*fx)+ap*(ex*fy-ey*fx) < 0
}

// circumradius returns the squared circumradius of a, b, c. It is +Inf (or
// NaN) for collinear points.
func circumradius(a, b, c Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	ex, ey := c.X-a.X, c.Y-a.Y

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := 0.5 / (dx*ey - dy*ex)

	x := (ey*bl - dy*cl) * d
	y := (dx*cl - ex*bl) * d
	return x*x + y*y
}

func circumcenter(a, b, c Point) Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	ex, ey := c.X-a.X, c.Y-a.Y

	bl := dx*dx + dy*dy
	cl := ex*ex + ey*ey
	d := 0.5 / (dx*ey - dy*ex)

	return Point{
		X: a.X + (ey*bl-dy*cl)*d,
		Y: a.Y + (dx*cl-ex*bl)*d,
	}
}

// triangleArea returns the signed area of a, b, c.
func triangleArea(a, b, c Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}

// polygonArea returns the signed area of a simple polygon.
func polygonArea(points []Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}
