package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/jgivc/coursecheck/internal/common"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	BackendDrive = "drive"
	BackendFS    = "fs"

	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatHTML = "html"

	envPrefix = "COURSECHECK_"

	defaultPageSize   = 1000
	defaultFilePrefix = "validation_report"
	defaultRunTTL     = 30 * 24 * time.Hour
)

type DriveConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	PageSize        int64  `yaml:"page_size"`
	SharedDrives    bool   `yaml:"shared_drives"`
}

type FSConfig struct {
	WorkDir   string   `yaml:"work_dir"`
	SkipFiles []string `yaml:"skip_files"`
}

type ReportConfig struct {
	OutDir       string `yaml:"out_dir"`
	Format       string `yaml:"format"`
	FilePrefix   string `yaml:"file_prefix"`
	FlushOnError bool   `yaml:"flush_on_error"`
}

type RedisConfig struct {
	URL string        `yaml:"url"`
	TTL time.Duration `yaml:"ttl"`
}

type Config struct {
	LogLevel string       `yaml:"log_level"`
	RootID   string       `yaml:"root_id"`
	Backend  string       `yaml:"backend"`
	Drive    DriveConfig  `yaml:"drive"`
	FS       FSConfig     `yaml:"fs"`
	Report   ReportConfig `yaml:"report"`
	Redis    RedisConfig  `yaml:"redis"`
}

func (c *Config) SetDefaults() {
	c.LogLevel = LogLevelInfo
	c.Backend = BackendDrive
	c.Drive.CredentialsFile = "credentials.json"
	c.Drive.PageSize = defaultPageSize
	c.FS.WorkDir = "."
	c.Report.OutDir = "."
	c.Report.Format = FormatXLSX
	c.Report.FilePrefix = defaultFilePrefix
	c.Redis.TTL = defaultRunTTL
}

// Load builds the configuration from defaults, the optional yaml file at
// cfgPath, the optional dotenv file at envPath and finally the process
// environment. Missing files are not an error.
func Load(cfgPath, envPath string) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("cannot parse config file %s: %w", cfgPath, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("cannot read config file %s: %w", cfgPath, err)
		}
	}

	dotenv := map[string]string{}
	if envPath != "" {
		values, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("cannot read env file %s: %w", envPath, err)
		}
	}

	if err := cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}

		v, ok := dotenv[key]

		return v, ok
	}); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":              &c.LogLevel,
		"ROOT_ID":                &c.RootID,
		"BACKEND":                &c.Backend,
		"DRIVE_CREDENTIALS_FILE": &c.Drive.CredentialsFile,
		"FS_WORK_DIR":            &c.FS.WorkDir,
		"REPORT_OUT_DIR":         &c.Report.OutDir,
		"REPORT_FORMAT":          &c.Report.Format,
		"REPORT_FILE_PREFIX":     &c.Report.FilePrefix,
		"REDIS_URL":              &c.Redis.URL,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DRIVE_SHARED_DRIVES":   &c.Drive.SharedDrives,
		"REPORT_FLUSH_ON_ERROR": &c.Report.FlushOnError,
	}
	for key, dst := range bools {
		if v, ok := lookup(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("cannot parse %s%s: %w", envPrefix, key, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup(envPrefix + "DRIVE_PAGE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %sDRIVE_PAGE_SIZE: %w", envPrefix, err)
		}
		c.Drive.PageSize = n
	}

	if v, ok := lookup(envPrefix + "REDIS_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("cannot parse %sREDIS_TTL: %w", envPrefix, err)
		}
		c.Redis.TTL = d
	}

	return nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownLogLevel, c.LogLevel)
	}

	switch c.Backend {
	case BackendDrive:
		if c.RootID == "" {
			return common.ErrRootNotConfigured
		}
	case BackendFS:
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownBackend, c.Backend)
	}

	switch c.Report.Format {
	case FormatXLSX, FormatCSV, FormatHTML:
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownReportFormat, c.Report.Format)
	}

	if c.Drive.PageSize < 1 {
		c.Drive.PageSize = defaultPageSize
	}

	if c.Report.FilePrefix == "" {
		c.Report.FilePrefix = defaultFilePrefix
	}

	return nil
}
