package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/noah-isme/study-plan-api/internal/models"
	"github.com/noah-isme/study-plan-api/pkg/config"
	appErrors "github.com/noah-isme/study-plan-api/pkg/errors"
)

var defaultCurriculum = config.CurriculumConfig{
	GradeOrder:             []string{"F", "D-", "D", "D+", "C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"},
	PassThresholds:         map[string]string{"Pre": "D+", "Eng": "C-"},
	DefaultProgram:         "Eng",
	Levels:                 []string{"1Freshman", "2Sophomore", "3Junior", "4Senior", "5Final"},
	Terms:                  []string{"Fall", "Spring"},
	CreditCap:              21,
	ExcludedTermSuffix:     "S25",
	UnmappedCourseName:     "Not in catalog (Eng program)",
	UnmappedPlacementLabel: "Empty",
}

// programAliases maps spelled-out program names onto the short catalog labels.
var programAliases = map[string]models.Program{
	"preengineering": models.ProgramPreEngineering,
	"engineering":    models.ProgramEngineering,
}

// Policy holds every tunable rule of the pipeline. It is immutable once built.
type Policy struct {
	Scale  *GradeScale
	Levels *LevelOrder
	Terms  []models.Term

	DefaultProgram            models.Program
	CreditCap                 float64
	ExcludedTermSuffix        string
	InProgressSatisfiesPrereq bool
	UnmappedCourseName        string
	UnmappedPlacement         string

	minimums   map[models.Program]int
	thresholds map[models.Program]string
	programs   map[string]models.Program
}

// NewPolicy validates raw curriculum settings, filling blanks from the built-in policy.
func NewPolicy(cfg config.CurriculumConfig) (*Policy, error) {
	cfg = withCurriculumDefaults(cfg)

	scale, err := NewGradeScale(cfg.GradeOrder)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInvalidPolicy, err, "invalid grade order")
	}
	levels, err := NewLevelOrder(cfg.Levels)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInvalidPolicy, err, "invalid level order")
	}

	p := &Policy{
		Scale:                     scale,
		Levels:                    levels,
		CreditCap:                 cfg.CreditCap,
		ExcludedTermSuffix:        cfg.ExcludedTermSuffix,
		InProgressSatisfiesPrereq: cfg.InProgressSatisfiesPrereq,
		UnmappedCourseName:        cfg.UnmappedCourseName,
		UnmappedPlacement:         cfg.UnmappedPlacementLabel,
		minimums:                  make(map[models.Program]int, len(cfg.PassThresholds)),
		thresholds:                make(map[models.Program]string, len(cfg.PassThresholds)),
		programs:                  make(map[string]models.Program, len(cfg.PassThresholds)+len(programAliases)),
	}
	for _, term := range cfg.Terms {
		p.Terms = append(p.Terms, models.Term(term))
	}
	for label, grade := range cfg.PassThresholds {
		rank, ok := scale.Rank(grade)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrInvalidPolicy, fmt.Sprintf("threshold %q for program %q is not on the grade scale", grade, label))
		}
		program := models.Program(strings.TrimSpace(label))
		p.minimums[program] = rank
		p.thresholds[program] = grade
		p.programs[programKey(label)] = program
	}
	for alias, program := range programAliases {
		if _, configured := p.minimums[program]; configured {
			if _, taken := p.programs[alias]; !taken {
				p.programs[alias] = program
			}
		}
	}

	def, ok := p.CanonicalProgram(cfg.DefaultProgram)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidPolicy, fmt.Sprintf("default program %q has no passing threshold", cfg.DefaultProgram))
	}
	p.DefaultProgram = def
	if p.CreditCap <= 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidPolicy, "credit cap must be positive")
	}
	return p, nil
}

// DefaultPolicy returns the built-in grading policy.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(config.CurriculumConfig{})
	if err != nil {
		panic(err)
	}
	return p
}

func withCurriculumDefaults(cfg config.CurriculumConfig) config.CurriculumConfig {
	if len(cfg.GradeOrder) == 0 {
		cfg.GradeOrder = defaultCurriculum.GradeOrder
	}
	if len(cfg.PassThresholds) == 0 {
		cfg.PassThresholds = defaultCurriculum.PassThresholds
	}
	if strings.TrimSpace(cfg.DefaultProgram) == "" {
		cfg.DefaultProgram = defaultCurriculum.DefaultProgram
	}
	if len(cfg.Levels) == 0 {
		cfg.Levels = defaultCurriculum.Levels
	}
	if len(cfg.Terms) == 0 {
		cfg.Terms = defaultCurriculum.Terms
	}
	if cfg.CreditCap == 0 {
		cfg.CreditCap = defaultCurriculum.CreditCap
	}
	if cfg.ExcludedTermSuffix == "" {
		cfg.ExcludedTermSuffix = defaultCurriculum.ExcludedTermSuffix
	}
	if cfg.UnmappedCourseName == "" {
		cfg.UnmappedCourseName = defaultCurriculum.UnmappedCourseName
	}
	if cfg.UnmappedPlacementLabel == "" {
		cfg.UnmappedPlacementLabel = defaultCurriculum.UnmappedPlacementLabel
	}
	return cfg
}

// CanonicalProgram maps a catalog program label or alias onto a configured program.
func (p *Policy) CanonicalProgram(label string) (models.Program, bool) {
	program, ok := p.programs[programKey(label)]
	return program, ok
}

// ProgramOrDefault resolves a program label, sending unknown programs to the default program.
func (p *Policy) ProgramOrDefault(label string) models.Program {
	if program, ok := p.CanonicalProgram(label); ok {
		return program
	}
	return p.DefaultProgram
}

// Passes reports whether grade meets the program's minimum. Unknown grades never pass.
func (p *Policy) Passes(programLabel string, grade string) bool {
	rank, ok := p.Scale.Rank(grade)
	if !ok {
		return false
	}
	return rank >= p.minimums[p.ProgramOrDefault(programLabel)]
}

// View exposes the policy for the API.
func (p *Policy) View() models.CurriculumPolicyView {
	thresholds := make(map[string]string, len(p.thresholds))
	for program, grade := range p.thresholds {
		thresholds[string(program)] = grade
	}
	terms := make([]models.Term, len(p.Terms))
	copy(terms, p.Terms)
	return models.CurriculumPolicyView{
		GradeOrder:                p.Scale.Grades(),
		PassThresholds:            thresholds,
		DefaultProgram:            p.DefaultProgram,
		Levels:                    p.Levels.Levels(),
		Terms:                     terms,
		CreditCap:                 p.CreditCap,
		ExcludedTermSuffix:        p.ExcludedTermSuffix,
		InProgressSatisfiesPrereq: p.InProgressSatisfiesPrereq,
	}
}

// Fingerprint identifies the policy in cache keys.
func (p *Policy) Fingerprint() string {
	programs := make([]string, 0, len(p.thresholds))
	for program, grade := range p.thresholds {
		programs = append(programs, string(program)+":"+grade)
	}
	sort.Strings(programs)
	parts := []string{
		strings.Join(p.Scale.Grades(), ","),
		strings.Join(programs, ","),
		string(p.DefaultProgram),
		strings.Join(p.Levels.Labels(), ","),
		fmt.Sprintf("%g", p.CreditCap),
		p.ExcludedTermSuffix,
		fmt.Sprintf("%t", p.InProgressSatisfiesPrereq),
		p.UnmappedCourseName,
		p.UnmappedPlacement,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:8])
}

func programKey(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
