package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/minwoo-jeong/asreco/internal/schema"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Data     DataConfig     `mapstructure:"data"`
	Matching MatchingConfig `mapstructure:"matching"`
	Schema   SchemaConfig   `mapstructure:"schema"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DataConfig points at the pre-packaged static reference files.
type DataConfig struct {
	Dir       string `mapstructure:"dir"`
	AssetFile string `mapstructure:"asset_file"`
	OrgFile   string `mapstructure:"org_file"`
}

// MatchingConfig tunes the cost matcher and the temporal linker.
type MatchingConfig struct {
	WindowDays      int `mapstructure:"window_days"`
	ShortRepeatDays int `mapstructure:"short_repeat_days"`
	// MatchBlankIdentity preserves the inherited ""=="" identity matching.
	MatchBlankIdentity bool `mapstructure:"match_blank_identity"`
}

// SchemaConfig overrides the column classifier's keyword tables.
type SchemaConfig struct {
	Identifiers     []string `mapstructure:"identifiers"`
	Categoricals    []string `mapstructure:"categoricals"`
	NumericKeywords []string `mapstructure:"numeric_keywords"`
	DateKeywords    []string `mapstructure:"date_keywords"`
}

// Classifier builds the column classifier from the configured keyword
// tables.
func (s SchemaConfig) Classifier() *schema.Classifier {
	return schema.NewClassifier(s.Identifiers, s.Categoricals, s.NumericKeywords, s.DateKeywords)
}

// LoadConfig reads config.yaml from the working directory, with environment
// overrides under the ASRECO prefix (for example ASRECO_SERVER_PORT). A
// missing file is fine; the defaults describe the stock deployment.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("ASRECO")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("data.dir", "data")
	viper.SetDefault("data.asset_file", "자산조회데이터.xlsx")
	viper.SetDefault("data.org_file", "조직도데이터.xlsx")
	viper.SetDefault("matching.window_days", 30)
	viper.SetDefault("matching.short_repeat_days", 30)
	viper.SetDefault("matching.match_blank_identity", true)
	viper.SetDefault("schema.identifiers", []string{
		schema.ColAssetID, schema.ColTechnicianID, schema.ColIssuerID, schema.ColEmployeeID,
	})
	viper.SetDefault("schema.categoricals", []string{schema.ColMaintType})
	viper.SetDefault("schema.numeric_keywords", []string{"금액", "시간", "비용", "단가", "취득가", schema.ColRepairCost})
	viper.SetDefault("schema.date_keywords", []string{"일자", "날짜", "date"})

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
