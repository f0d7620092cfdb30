package rhythm

import (
	"math"
	"time"
)

// Judgement classifies the outcome of a tap.
type Judgement int

const (
	JudgementIgnored Judgement = iota // session not playing
	JudgementEmpty                    // no tile within the hit window
	JudgementGood
	JudgementPerfect
)

// String returns the HUD label for the judgement.
func (j Judgement) String() string {
	switch j {
	case JudgementPerfect:
		return "PERFECT"
	case JudgementGood:
		return "GOOD"
	case JudgementEmpty:
		return "MISS"
	default:
		return ""
	}
}

// Scoring constants.
const (
	PerfectDistance = 5.0
	PerfectPoints   = 300
	GoodPoints      = 100
)

// qualifyingMargin is the largest distance from the hit line a tap can resolve.
const qualifyingMargin = HitWindow + TileHeight/2

// Classify maps a distance from the hit line to a judgement.
// The distance must already be inside the qualifying margin.
func Classify(dist float64) Judgement {
	if dist < PerfectDistance {
		return JudgementPerfect
	}
	return JudgementGood
}

// Points returns the score awarded for a judgement.
func (j Judgement) Points() int {
	switch j {
	case JudgementPerfect:
		return PerfectPoints
	case JudgementGood:
		return GoodPoints
	default:
		return 0
	}
}

// HitDetector selects which tile a lane tap resolves.
type HitDetector struct {
	BPM float64
}

// Find returns the index of the unresolved tile in lane closest to the hit line,
// if any is within the qualifying margin. Ties keep the first tile in order.
func (d HitDetector) Find(tiles []TileData, lane int, at time.Duration) (idx int, dist float64, ok bool) {
	idx = -1
	dist = math.Inf(1)

	for i := range tiles {
		t := &tiles[i]
		if t.Lane != lane || t.Played || t.Missed {
			continue
		}
		dt := math.Abs(Position(at, t.SpawnTime, d.BPM) - HitZoneY)
		if dt < qualifyingMargin && dt < dist {
			idx = i
			dist = dt
		}
	}
	return idx, dist, idx >= 0
}
