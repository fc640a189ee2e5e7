package viz

import "github.com/charmbracelet/harmonica"

// spring eases a scalar toward a moving target.
type spring struct {
	s   harmonica.Spring
	pos float64
	vel float64
}

func newSpring(fps int, frequency, damping float64, start float64) spring {
	return spring{s: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping), pos: start}
}

func (s *spring) step(target float64) float64 {
	s.pos, s.vel = s.s.Update(s.pos, s.vel, target)
	return s.pos
}

// settled reports whether the spring is within tol of target and nearly
// at rest.
func (s *spring) settled(target, tol float64) bool {
	d := s.pos - target
	return d < tol && d > -tol && s.vel < tol && s.vel > -tol
}

func (s *spring) jump(v float64) {
	s.pos, s.vel = v, 0
}
