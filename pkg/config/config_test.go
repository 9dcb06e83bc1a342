package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestViper(env map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range env {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg := fromViper(newTestViper(nil))

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.Equal(t, 30*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "university_requirements", cfg.Catalog.Table)
	assert.False(t, cfg.Catalog.DatabaseEnabled)
	assert.True(t, cfg.Metrics.Enabled)

	cur := cfg.Curriculum
	assert.Len(t, cur.GradeOrder, 13)
	assert.Equal(t, "F", cur.GradeOrder[0])
	assert.Equal(t, map[string]string{"Pre": "D+", "Eng": "C-"}, cur.PassThresholds)
	assert.Equal(t, 21.0, cur.CreditCap)
	assert.Equal(t, "S25", cur.ExcludedTermSuffix)
	assert.False(t, cur.InProgressSatisfiesPrereq)
}

func TestFromViperOverrides(t *testing.T) {
	cfg := fromViper(newTestViper(map[string]interface{}{
		"CURRICULUM_PASS_THRESHOLDS":              " Core : P , bad, Lab:H",
		"CURRICULUM_LEVELS":                       "Year1, Year2",
		"CURRICULUM_CREDIT_CAP":                   "18.5",
		"CURRICULUM_IN_PROGRESS_SATISFIES_PREREQ": "true",
		"REPORT_CACHE_TTL":                        "not-a-duration",
		"ALLOWED_ORIGINS":                         "http://a.test, ,http://b.test",
		"UPLOAD_MAX_FILE_SIZE":                    0,
		"EXPORT_CSV_BOM":                          "true",
	}))

	assert.Equal(t, map[string]string{"Core": "P", "Lab": "H"}, cfg.Curriculum.PassThresholds)
	assert.Equal(t, []string{"Year1", "Year2"}, cfg.Curriculum.Levels)
	assert.Equal(t, 18.5, cfg.Curriculum.CreditCap)
	assert.True(t, cfg.Curriculum.InProgressSatisfiesPrereq)
	assert.Equal(t, 10*time.Minute, cfg.ReportCache.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.True(t, cfg.Export.CSVByteOrderMark)
}
