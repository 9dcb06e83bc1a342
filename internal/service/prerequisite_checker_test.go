package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
	"github.com/noah-isme/study-plan-api/pkg/config"
)

func TestPrerequisiteCheckMissingThenMet(t *testing.T) {
	checker := NewPrerequisiteChecker(DefaultPolicy())
	catalog := catalogFixture()

	results := checker.Check([]string{"MATH201"}, map[string]string{}, catalog)
	require.Len(t, results, 1)
	assert.Equal(t, models.PrerequisiteMissing, results[0].Status)
	assert.Equal(t, []string{"MATH101"}, results[0].Missing)

	results = checker.Check([]string{"MATH201"}, map[string]string{"MATH101": "B"}, catalog)
	require.Len(t, results, 1)
	assert.Equal(t, models.PrerequisiteMet, results[0].Status)
	assert.Empty(t, results[0].Missing)
}

func TestPrerequisiteCheckUnknownAndDuplicates(t *testing.T) {
	checker := NewPrerequisiteChecker(DefaultPolicy())

	results := checker.Check([]string{"ZZZ999", "CS201", "CS201"}, map[string]string{"CS101": "A"}, catalogFixture())
	require.Len(t, results, 3)
	assert.Equal(t, models.PrerequisiteNoInfo, results[0].Status)
	assert.Nil(t, results[0].Missing)
	assert.Equal(t, results[1], results[2])
	assert.Equal(t, []string{"MATH101"}, results[1].Missing)
}

func TestPassedCoursesInProgressFlag(t *testing.T) {
	records := []models.TranscriptRecord{
		{CourseCode: "CS101", Grade: "A", Status: models.CourseStatusPass},
		{CourseCode: "MATH101", Grade: "F", Status: models.CourseStatusFail},
	}

	strict := NewPrerequisiteChecker(DefaultPolicy())
	assert.Equal(t, map[string]string{"CS101": "A"}, strict.PassedCourses(records, []string{"MATH101"}))

	policy, err := NewPolicy(config.CurriculumConfig{InProgressSatisfiesPrereq: true})
	require.NoError(t, err)
	lenient := NewPrerequisiteChecker(policy)
	passed := lenient.PassedCourses(records, []string{"MATH101"})
	assert.Contains(t, passed, "MATH101")
	assert.Equal(t, "A", passed["CS101"])
}
