package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/noah-isme/study-plan-api/internal/models"
)

// LevelOrder is the fixed academic standing sequence, e.g. 1Freshman < ... < 5Final.
// Labels match with or without their ordinal prefix, ignoring case.
type LevelOrder struct {
	levels    []models.Level
	positions map[string]int
}

// NewLevelOrder builds an ordering from labels listed lowest first.
func NewLevelOrder(labels []string) (*LevelOrder, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("level order requires at least one level")
	}
	o := &LevelOrder{positions: make(map[string]int, len(labels)*2)}
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("level order contains an empty level")
		}
		pos := len(o.levels)
		for _, key := range levelKeys(label) {
			if prev, dup := o.positions[key]; dup && prev != pos {
				return nil, fmt.Errorf("level %q collides with %q", label, o.levels[prev])
			}
			o.positions[key] = pos
		}
		o.levels = append(o.levels, models.Level(label))
	}
	return o, nil
}

// Position returns the ordinal of a level label.
func (o *LevelOrder) Position(level string) (int, bool) {
	pos, ok := o.positions[strings.ToLower(strings.TrimSpace(level))]
	return pos, ok
}

// Parse returns the canonical label for a level input.
func (o *LevelOrder) Parse(level string) (models.Level, bool) {
	pos, ok := o.Position(level)
	if !ok {
		return "", false
	}
	return o.levels[pos], true
}

// UpTo returns the positions at or below the target level.
func (o *LevelOrder) UpTo(target string) (map[int]struct{}, error) {
	pos, ok := o.Position(target)
	if !ok {
		return nil, fmt.Errorf("invalid level input %q; choose from: %s", target, strings.Join(o.Labels(), ", "))
	}
	set := make(map[int]struct{}, pos+1)
	for i := 0; i <= pos; i++ {
		set[i] = struct{}{}
	}
	return set, nil
}

// Levels returns the canonical labels lowest first.
func (o *LevelOrder) Levels() []models.Level {
	out := make([]models.Level, len(o.levels))
	copy(out, o.levels)
	return out
}

// Labels returns the canonical labels as strings.
func (o *LevelOrder) Labels() []string {
	out := make([]string, len(o.levels))
	for i, l := range o.levels {
		out[i] = string(l)
	}
	return out
}

func levelKeys(label string) []string {
	full := strings.ToLower(label)
	bare := strings.TrimLeftFunc(full, unicode.IsDigit)
	if bare == "" || bare == full {
		return []string{full}
	}
	return []string{full, bare}
}
