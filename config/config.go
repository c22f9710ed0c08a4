package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/kjk/students/u"
)

type Config struct {
	// file with students, created on first save
	DataFile string `mapstructure:"data_file" validate:"required"`
	// if empty, nothing is logged to files
	LogDir string `mapstructure:"log_dir"`
	// if set, data file is backed up here on startup
	BackupDir    string `mapstructure:"backup_dir"`
	BackupFormat string `mapstructure:"backup_format" validate:"oneof=zstd brotli"`
	Verbose      bool   `mapstructure:"verbose"`
}

const envPrefix = "STUDENTS"

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_file", "students.txt")
	v.SetDefault("log_dir", "")
	v.SetDefault("backup_dir", "")
	v.SetDefault("backup_format", "zstd")
	v.SetDefault("verbose", false)
}

// Load reads optional students.yaml from configDirs (or from current
// directory and ~/.config/students if none given). Environment
// variables STUDENTS_DATA_FILE, STUDENTS_LOG_DIR, STUDENTS_BACKUP_DIR,
// STUDENTS_BACKUP_FORMAT and STUDENTS_VERBOSE take precedence.
func Load(configDirs ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("students")
	v.SetConfigType("yaml")
	if len(configDirs) == 0 {
		configDirs = []string{".", "~/.config/students"}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(u.ExpandTildeInPath(dir))
	}
	if err := v.ReadInConfig(); err != nil {
		// config file is optional
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.BackupFormat = strings.ToLower(strings.TrimSpace(config.BackupFormat))
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	config.DataFile = filepath.Clean(u.ExpandTildeInPath(config.DataFile))
	if config.LogDir != "" {
		config.LogDir = filepath.Clean(u.ExpandTildeInPath(config.LogDir))
	}
	if config.BackupDir != "" {
		config.BackupDir = filepath.Clean(u.ExpandTildeInPath(config.BackupDir))
	}
	return &config, nil
}
