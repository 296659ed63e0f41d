package config

import (
	"fmt"

	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/pipeline"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyStartRow     = "pipeline.start_row"
	KeyHeaderWindow = "pipeline.header_window"
	KeyThreshold    = "pipeline.threshold"
	KeySampleRows   = "pipeline.sample_rows"
	KeyDatabasePath = "database.path"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
)

// DefaultDatabasePath is where the ingestion history lives unless configured.
const DefaultDatabasePath = "~/.config/sift/sift.db"

// SetDefaults registers default values for every key on v.
func SetDefaults(v *viper.Viper) {
	defaults := pipeline.DefaultOptions()
	v.SetDefault(KeyStartRow, defaults.StartRow)
	v.SetDefault(KeyHeaderWindow, defaults.HeaderWindow)
	v.SetDefault(KeyThreshold, defaults.Threshold)
	v.SetDefault(KeySampleRows, defaults.SampleRows)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// LoadPipelineOptions reads pipeline options from v. Unset keys keep
// pipeline.DefaultOptions values.
func LoadPipelineOptions(v *viper.Viper) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	if v.IsSet(KeyStartRow) {
		opts.StartRow = v.GetInt(KeyStartRow)
	}
	if v.IsSet(KeyHeaderWindow) {
		opts.HeaderWindow = v.GetInt(KeyHeaderWindow)
	}
	if v.IsSet(KeyThreshold) {
		opts.Threshold = v.GetFloat64(KeyThreshold)
	}
	if v.IsSet(KeySampleRows) {
		opts.SampleRows = v.GetInt(KeySampleRows)
	}

	if opts.StartRow < 0 {
		return opts, fmt.Errorf("%w: %s must not be negative, got %d", common.ErrInvalidConfig, KeyStartRow, opts.StartRow)
	}
	if opts.HeaderWindow < 1 {
		return opts, fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyHeaderWindow, opts.HeaderWindow)
	}
	if opts.SampleRows < 1 {
		return opts, fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeySampleRows, opts.SampleRows)
	}
	if opts.Threshold < 0 {
		return opts, fmt.Errorf("%w: %s must not be negative, got %g", common.ErrInvalidConfig, KeyThreshold, opts.Threshold)
	}

	return opts, nil
}

// DatabasePath returns the expanded history database path from v.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString(KeyDatabasePath)
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}
