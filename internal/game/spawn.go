package game

import "math"

// spawn launches one puck down a random lane. Callers check the board is empty.
func (s *Sim) spawn() *Puck {
	if len(s.spawns) == 0 {
		return nil
	}

	lane := s.rng.IntN(len(s.spawns))
	speed := (s.tuning.MinSpeed + s.rng.Float64()*s.tuning.SpeedJitter) * s.speedMult * s.layout.Scale

	rotation := s.tuning.RotationDeg * math.Pi / 180
	if s.rng.Float64() < 0.5 {
		rotation = -rotation
	}

	p := NewPuck(s.spawns[lane], s.targets[lane], speed, s.tuning.PuckRadius*s.layout.Scale, rotation)
	s.pucks = append(s.pucks, p)
	return p
}

// checkSave tests the puck against the active goalie at the crossing tick
func (s *Sim) checkSave(p *Puck) bool {
	return s.goalies[s.active].Saves(p)
}
