package jumpy

// ScoreTracker credits one point per obstacle whose center line the body has
// crossed. The best score survives Reset for the rest of the session.
type ScoreTracker struct {
	score int
	best  int
}

// Tick credits every obstacle not yet passed whose center is behind the body.
// Returns the number of points credited this tick.
func (s *ScoreTracker) Tick(body *Body, field *ObstacleField) int {
	credited := 0
	for i := range field.obstacles {
		o := &field.obstacles[i]
		if !o.Passed && o.CenterX() < body.X {
			o.Passed = true
			credited++
		}
	}
	s.score += credited
	if s.score > s.best {
		s.best = s.score
	}
	return credited
}

// Score returns the score of the current run.
func (s *ScoreTracker) Score() int {
	return s.score
}

// Best returns the best score of the session.
func (s *ScoreTracker) Best() int {
	return s.best
}

// Reset starts a new run.
func (s *ScoreTracker) Reset() {
	s.score = 0
}
