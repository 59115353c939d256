package sim

// Possession identifies which side has the ball.
type Possession int

const (
	HomePossession Possession = iota
	AwayPossession
)

// Other returns the opposing side.
func (p Possession) Other() Possession {
	if p == HomePossession {
		return AwayPossession
	}
	return HomePossession
}

// GameState is the trial-local mutable record of one simulated game.
// YardLine is measured as the offense's distance to the opponent goal
// line: 1 is knocking on the door, 99 is backed up against its own end
// zone, 100 and beyond is a safety.
type GameState struct {
	HomeScore int
	AwayScore int

	Quarter int
	Clock   int // seconds remaining in the current quarter

	Down     int
	Distance int
	YardLine int

	Possession   Possession
	HomeTimeouts int
	AwayTimeouts int

	Plays     int
	halfEnded bool
}

// NewGameState creates the fresh state for one trial.
func NewGameState(cfg Config) *GameState {
	return &GameState{
		Quarter:      1,
		Clock:        cfg.QuarterSeconds,
		HomeTimeouts: 3,
		AwayTimeouts: 3,
	}
}

// AddPoints credits points to a side. Scores only ever increase; the
// monotonicity invariant of trials rests on this being the sole mutation
// path for scores.
func (s *GameState) AddPoints(side Possession, pts int) {
	if pts <= 0 {
		return
	}
	if side == HomePossession {
		s.HomeScore += pts
	} else {
		s.AwayScore += pts
	}
}

// OffenseScoreDiff is the current offense's score minus the defense's.
func (s *GameState) OffenseScoreDiff() int {
	if s.Possession == HomePossession {
		return s.HomeScore - s.AwayScore
	}
	return s.AwayScore - s.HomeScore
}

// TwoMinute reports whether the game is inside the final two minutes of
// either half.
func (s *GameState) TwoMinute(cfg Config) bool {
	return (s.Quarter == 2 || s.Quarter == 4) && s.Clock <= cfg.TwoMinuteSeconds
}

// Overtime reports whether play has moved past regulation.
func (s *GameState) Overtime() bool { return s.Quarter > 4 }

// StartDrive resets down and distance for a new possession at yardLine.
func (s *GameState) StartDrive(side Possession, yardLine int) {
	s.Possession = side
	s.Down = 1
	s.Distance = 10
	s.YardLine = yardLine
	if s.YardLine < 1 {
		s.YardLine = 1
	}
	if s.YardLine > 99 {
		s.YardLine = 99
	}
	if s.Distance > s.YardLine {
		s.Distance = s.YardLine
	}
}

// advanceClock burns seconds, rolling Q1 into Q2 and Q3 into Q4. Hitting
// zero in Q2 or Q4 ends the half. Any rollover deficit carries into the
// next quarter so total half length stays exact.
func (s *GameState) advanceClock(cfg Config, secs int) {
	if s.Overtime() {
		return // overtime is untimed in the simplified rule
	}
	s.Clock -= secs
	if s.Clock > 0 {
		return
	}
	switch s.Quarter {
	case 1, 3:
		s.Quarter++
		s.Clock += cfg.QuarterSeconds
	default:
		s.Clock = 0
		s.halfEnded = true
	}
}

// HalfEnded reports whether the current half's clock is exhausted.
func (s *GameState) HalfEnded() bool { return s.halfEnded }

// StartSecondHalf resets the clock for the third quarter.
func (s *GameState) StartSecondHalf(cfg Config) {
	s.Quarter = 3
	s.Clock = cfg.QuarterSeconds
	s.halfEnded = false
	s.HomeTimeouts = 3
	s.AwayTimeouts = 3
}

// StartOvertime moves the game past regulation.
func (s *GameState) StartOvertime() {
	s.Quarter = 5
	s.Clock = 0
	s.halfEnded = false
}
