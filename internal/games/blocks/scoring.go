package blocks

import "math"

// Policy holds the scoring constants.
type Policy struct {
	PointsPerBlock        int // Awarded per placed block, clear or not
	PointsPerLine         int // Base points per cleared line without an intersection
	IntersectionPoints    int // Base points for a clear with at least one intersection
	StreakBonusPercent    int // Extra percent of base points per streak level above 1
	MinIntersectionStreak int // Streak floor after an intersection clear
}

// DefaultPolicy returns the standard scoring rules.
func DefaultPolicy() Policy {
	return Policy{
		PointsPerBlock:        10,
		PointsPerLine:         100,
		IntersectionPoints:    250,
		StreakBonusPercent:    10,
		MinIntersectionStreak: 2,
	}
}

// Award is the outcome of scoring one placement.
type Award struct {
	Points          int     // Total awarded, rounded to the nearest integer
	Streak          int     // Streak to carry into the next placement
	PlacementPoints int     // Points for the placed blocks
	LinePoints      float64 // Points for cleared lines after the streak bonus
	BonusPercent    int     // Streak bonus applied to the line points
	Intersection    bool    // Whether the intersection base replaced the per-line base
}

// Score converts a placement of p that cleared lines/intersections into
// points, given the streak before the placement.
func (pol Policy) Score(p Piece, lines, intersections, priorStreak int) Award {
	a := Award{
		PlacementPoints: pol.PointsPerBlock * p.Size(),
	}

	if lines > 0 {
		a.Streak = priorStreak + 1
		base := float64(pol.PointsPerLine * lines)
		if intersections > 0 {
			a.Intersection = true
			a.Streak = max(a.Streak, pol.MinIntersectionStreak)
			base = float64(pol.IntersectionPoints)
		}
		a.BonusPercent = (a.Streak - 1) * pol.StreakBonusPercent
		a.LinePoints = base * (1 + float64(a.BonusPercent)/100)
	}

	a.Points = int(math.Round(float64(a.PlacementPoints) + a.LinePoints))
	return a
}
