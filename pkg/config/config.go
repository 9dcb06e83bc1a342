package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	CORS        CORSConfig
	Log         LogConfig
	Uploads     UploadConfig
	Export      ExportConfig
	Catalog     CatalogConfig
	ReportCache ReportCacheConfig
	Metrics     MetricsConfig
	Curriculum  CurriculumConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// UploadConfig bounds multipart uploads of requirement and history tables.
type UploadConfig struct {
	MaxFileSizeBytes int64
}

// ExportConfig tunes rendered downloads.
type ExportConfig struct {
	CSVByteOrderMark bool
}

// CatalogConfig controls where requirement catalogs come from and how long compiled indexes live.
type CatalogConfig struct {
	DatabaseEnabled bool
	Table           string
	CacheTTL        time.Duration
}

// ReportCacheConfig toggles the Redis-backed report cache.
type ReportCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// CurriculumConfig carries the grading policy as raw settings; the service layer validates it.
type CurriculumConfig struct {
	GradeOrder                []string
	PassThresholds            map[string]string
	DefaultProgram            string
	Levels                    []string
	Terms                     []string
	CreditCap                 float64
	ExcludedTermSuffix        string
	InProgressSatisfiesPrereq bool
	UnmappedCourseName        string
	UnmappedPlacementLabel    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxUpload := v.GetInt64("UPLOAD_MAX_FILE_SIZE")
	if maxUpload <= 0 {
		maxUpload = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadConfig{MaxFileSizeBytes: maxUpload}

	cfg.Export = ExportConfig{CSVByteOrderMark: v.GetBool("EXPORT_CSV_BOM")}

	cfg.Catalog = CatalogConfig{
		DatabaseEnabled: v.GetBool("ENABLE_DB_CATALOG"),
		Table:           v.GetString("CATALOG_TABLE"),
		CacheTTL:        parseDuration(v.GetString("CATALOG_CACHE_TTL"), 30*time.Minute),
	}

	cfg.ReportCache = ReportCacheConfig{
		Enabled: v.GetBool("ENABLE_REPORT_CACHE"),
		TTL:     parseDuration(v.GetString("REPORT_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	creditCap := v.GetFloat64("CURRICULUM_CREDIT_CAP")
	if creditCap <= 0 {
		creditCap = 21
	}
	cfg.Curriculum = CurriculumConfig{
		GradeOrder:                splitAndTrim(v.GetString("CURRICULUM_GRADE_ORDER")),
		PassThresholds:            parsePairs(v.GetString("CURRICULUM_PASS_THRESHOLDS")),
		DefaultProgram:            v.GetString("CURRICULUM_DEFAULT_PROGRAM"),
		Levels:                    splitAndTrim(v.GetString("CURRICULUM_LEVELS")),
		Terms:                     splitAndTrim(v.GetString("CURRICULUM_TERMS")),
		CreditCap:                 creditCap,
		ExcludedTermSuffix:        strings.TrimSpace(v.GetString("CURRICULUM_EXCLUDED_TERM_SUFFIX")),
		InProgressSatisfiesPrereq: v.GetBool("CURRICULUM_IN_PROGRESS_SATISFIES_PREREQ"),
		UnmappedCourseName:        v.GetString("CURRICULUM_UNMAPPED_COURSE_NAME"),
		UnmappedPlacementLabel:    v.GetString("CURRICULUM_UNMAPPED_PLACEMENT_LABEL"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "study_plan")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 5*1024*1024)

	v.SetDefault("ENABLE_DB_CATALOG", false)
	v.SetDefault("CATALOG_TABLE", "university_requirements")
	v.SetDefault("CATALOG_CACHE_TTL", "30m")

	v.SetDefault("ENABLE_REPORT_CACHE", false)
	v.SetDefault("REPORT_CACHE_TTL", "10m")

	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("CURRICULUM_GRADE_ORDER", "F,D-,D,D+,C-,C,C+,B-,B,B+,A-,A,A+")
	v.SetDefault("CURRICULUM_PASS_THRESHOLDS", "Pre:D+,Eng:C-")
	v.SetDefault("CURRICULUM_DEFAULT_PROGRAM", "Eng")
	v.SetDefault("CURRICULUM_LEVELS", "1Freshman,2Sophomore,3Junior,4Senior,5Final")
	v.SetDefault("CURRICULUM_TERMS", "Fall,Spring")
	v.SetDefault("CURRICULUM_CREDIT_CAP", 21)
	v.SetDefault("CURRICULUM_EXCLUDED_TERM_SUFFIX", "S25")
	v.SetDefault("CURRICULUM_IN_PROGRESS_SATISFIES_PREREQ", false)
	v.SetDefault("CURRICULUM_UNMAPPED_COURSE_NAME", "Not in catalog (Eng program)")
	v.SetDefault("CURRICULUM_UNMAPPED_PLACEMENT_LABEL", "Empty")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parsePairs reads "key:value" items separated by commas; malformed items are skipped.
func parsePairs(raw string) map[string]string {
	result := make(map[string]string)
	for _, item := range splitAndTrim(raw) {
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		result[key] = value
	}
	return result
}
