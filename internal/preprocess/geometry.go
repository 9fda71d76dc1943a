package preprocess

import (
	"math"
	"sort"
)

type point struct{ x, y float64 }

// convexHull computes the convex hull of pts using Andrew's monotone chain.
// The returned hull is in counter-clockwise order without the closing point.
func convexHull(pts []point) []point {
	if len(pts) < 3 {
		return pts
	}
	sorted := make([]point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].x != sorted[j].x {
			return sorted[i].x < sorted[j].x
		}
		return sorted[i].y < sorted[j].y
	})

	var lower, upper []point
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func cross(o, a, b point) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

// minAreaAngle runs rotating calipers over the hull and returns the
// orientation of the minimum-area bounding rectangle, normalized into
// [-90, 0) degrees.
func minAreaAngle(hull []point) float64 {
	best := math.Inf(1)
	bestAngle := 0.0
	n := len(hull)
	for i := 0; i < n; i++ {
		a, b := hull[i], hull[(i+1)%n]
		ux, uy := b.x-a.x, b.y-a.y
		norm := math.Hypot(ux, uy)
		if norm == 0 {
			continue
		}
		ux, uy = ux/norm, uy/norm
		vx, vy := -uy, ux

		sMin, sMax := math.Inf(1), math.Inf(-1)
		tMin, tMax := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			s := p.x*ux + p.y*uy
			t := p.x*vx + p.y*vy
			sMin, sMax = math.Min(sMin, s), math.Max(sMax, s)
			tMin, tMax = math.Min(tMin, t), math.Max(tMax, t)
		}
		area := (sMax - sMin) * (tMax - tMin)
		if area < best {
			best = area
			bestAngle = math.Atan2(uy, ux) * 180 / math.Pi
		}
	}
	return normalizeAngle(bestAngle)
}

// normalizeAngle folds an orientation in degrees into [-90, 0). Rectangle
// orientations are only meaningful modulo 90.
func normalizeAngle(deg float64) float64 {
	m := math.Mod(deg, 90)
	if m >= 0 {
		m -= 90
	}
	return m
}
