package service

import (
	"fmt"
	"strings"
)

// unranked is the rank of absent or unknown grades; it sits below every known grade.
const unranked = -1

// GradeScale ranks letter grades from lowest to highest.
type GradeScale struct {
	order []string
	ranks map[string]int
}

// NewGradeScale builds a scale from grades listed lowest first.
func NewGradeScale(order []string) (*GradeScale, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("grade scale requires at least one grade")
	}
	s := &GradeScale{order: make([]string, 0, len(order)), ranks: make(map[string]int, len(order))}
	for _, g := range order {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, fmt.Errorf("grade scale contains an empty grade")
		}
		if _, dup := s.ranks[g]; dup {
			return nil, fmt.Errorf("grade %q listed twice", g)
		}
		s.ranks[g] = len(s.order)
		s.order = append(s.order, g)
	}
	return s, nil
}

// Rank returns the grade's position; ok is false for unknown or empty grades.
func (s *GradeScale) Rank(grade string) (int, bool) {
	r, ok := s.ranks[strings.TrimSpace(grade)]
	if !ok {
		return unranked, false
	}
	return r, true
}

// Grades returns the scale lowest first.
func (s *GradeScale) Grades() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
