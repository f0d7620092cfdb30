package rhythm

// GameScore aggregates the outcome of a session.
type GameScore struct {
	Score    int `json:"score"`
	Combo    int `json:"combo"`
	MaxCombo int `json:"max_combo"`
	Perfects int `json:"perfects"`
	Goods    int `json:"goods"`
	Misses   int `json:"misses"`
}

// Accuracy returns the share of resolved tiles that were hit, in percent.
// A score with nothing resolved yet is 100% accurate.
func (s GameScore) Accuracy() float64 {
	total := s.Perfects + s.Goods + s.Misses
	if total == 0 {
		return 100
	}
	return float64(s.Perfects+s.Goods) * 100 / float64(total)
}

// Rank returns the letter grade shown on the game-over screen.
func (s GameScore) Rank() string {
	switch {
	case s.Score > 5000:
		return "S"
	case s.Score > 3000:
		return "A"
	case s.Score > 1000:
		return "B"
	case s.Score > 500:
		return "C"
	case s.Score > 0:
		return "D"
	default:
		return "F"
	}
}

// ScoreKeeper is the only writer of a session's GameScore.
type ScoreKeeper struct {
	score GameScore
}

// RecordPerfect registers a perfect hit.
func (k *ScoreKeeper) RecordPerfect() {
	k.score.Score += PerfectPoints
	k.score.Perfects++
	k.extendCombo()
}

// RecordGood registers a good hit.
func (k *ScoreKeeper) RecordGood() {
	k.score.Score += GoodPoints
	k.score.Goods++
	k.extendCombo()
}

// RecordMiss registers a tile that fell through the hit zone.
func (k *ScoreKeeper) RecordMiss() {
	k.score.Misses++
	k.score.Combo = 0
}

// BreakCombo resets the streak without counting a miss (empty-lane tap).
func (k *ScoreKeeper) BreakCombo() {
	k.score.Combo = 0
}

// Score returns a copy of the current score.
func (k *ScoreKeeper) Score() GameScore {
	return k.score
}

func (k *ScoreKeeper) extendCombo() {
	k.score.Combo++
	if k.score.Combo > k.score.MaxCombo {
		k.score.MaxCombo = k.score.Combo
	}
}
