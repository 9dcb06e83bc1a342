package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/study-plan-api/internal/models"
	"github.com/noah-isme/study-plan-api/pkg/config"
)

func raw(course, grade string) models.RawTranscriptRow {
	return models.RawTranscriptRow{CourseField: course, GradeField: grade}
}

func TestNormalizeKeepsBestGrade(t *testing.T) {
	normalizer := NewTranscriptNormalizer(DefaultPolicy(), nil)

	out := normalizer.Normalize([]models.RawTranscriptRow{
		raw("MATH101-Calculus-F23", "(C)"),
		raw("MATH101-Calculus-F24", "(B+)"),
		raw("MATH101-Calculus-S24", "(C+)"),
	})

	require.Len(t, out.Records, 1)
	assert.Equal(t, "MATH101", out.Records[0].CourseCode)
	assert.Equal(t, "B+", out.Records[0].Grade)
}

func TestNormalizeExcludesCurrentTerm(t *testing.T) {
	normalizer := NewTranscriptNormalizer(DefaultPolicy(), nil)

	out := normalizer.Normalize([]models.RawTranscriptRow{
		raw("PHYS201-Mechanics-S25", "(A)"),
		raw("CS102S25", "(A+)"),
		raw("CS101-Intro-F24", "(B)"),
	})

	require.Len(t, out.Records, 1)
	assert.Equal(t, "CS101", out.Records[0].CourseCode)
	assert.Equal(t, []string{"CS102S25", "PHYS201"}, out.InProgress)
}

func TestNormalizeDropsRowsWithoutCourseCode(t *testing.T) {
	normalizer := NewTranscriptNormalizer(DefaultPolicy(), nil)

	out := normalizer.Normalize([]models.RawTranscriptRow{
		raw("", "(A)"),
		raw("Course name", "Grade"),
		raw("2024", "(A)"),
		raw("ENG110-Writing", "no grade recorded"),
	})

	require.Len(t, out.Records, 1)
	assert.Equal(t, "ENG110", out.Records[0].CourseCode)
	assert.Equal(t, "", out.Records[0].Grade)
}

func TestNormalizeSortsByCourseCode(t *testing.T) {
	normalizer := NewTranscriptNormalizer(DefaultPolicy(), nil)

	out := normalizer.Normalize([]models.RawTranscriptRow{
		raw("PHYS101", "(B)"),
		raw("CS101", "(A)"),
		raw("MATH101", "(C)"),
	})

	codes := make([]string, len(out.Records))
	for i, r := range out.Records {
		codes[i] = r.CourseCode
	}
	assert.Equal(t, []string{"CS101", "MATH101", "PHYS101"}, codes)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	normalizer := NewTranscriptNormalizer(DefaultPolicy(), nil)
	first := normalizer.Normalize([]models.RawTranscriptRow{
		raw("CS101-Intro-F23", "(D)"),
		raw("CS101-Intro-F24", "(A-)"),
		raw("MATH101-Calculus", "(C)"),
		raw("ENG110-Writing", "(B+)"),
		raw("PHYS201-Mechanics-S25", "(A)"),
	})

	again := make([]models.RawTranscriptRow, len(first.Records))
	for i, r := range first.Records {
		again[i] = raw(r.CourseCode, "("+r.Grade+")")
	}
	second := normalizer.Normalize(again)

	assert.Equal(t, first.Records, second.Records)
	assert.Empty(t, second.InProgress)
}

func TestNormalizeHonoursConfiguredSuffix(t *testing.T) {
	policy, err := NewPolicy(config.CurriculumConfig{ExcludedTermSuffix: "F26"})
	require.NoError(t, err)
	normalizer := NewTranscriptNormalizer(policy, nil)

	out := normalizer.Normalize([]models.RawTranscriptRow{
		raw("CS101-Intro-S25", "(B)"),
		raw("CS201-Data-F26", "(A)"),
	})

	require.Len(t, out.Records, 1)
	assert.Equal(t, "CS101", out.Records[0].CourseCode)
	assert.Equal(t, []string{"CS201"}, out.InProgress)
}

func TestExtractGrade(t *testing.T) {
	assert.Equal(t, "B+", ExtractGrade("(B+)"))
	assert.Equal(t, "A", ExtractGrade("Final ( A ) (B)"))
	assert.Equal(t, "", ExtractGrade("B+"))
	assert.Equal(t, "", ExtractGrade(""))
}

func TestCourseCodeFromField(t *testing.T) {
	assert.Equal(t, "CS101", CourseCodeFromField(" CS101 - Intro - F24"))
	assert.Equal(t, "CS101", CourseCodeFromField("CS101"))
	assert.Equal(t, "", CourseCodeFromField("-Intro"))
}
