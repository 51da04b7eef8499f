// internal/config/config.go

// Package config 載入服務設定：先讀取 .env（若存在），再由 viper 綁定環境變數並套用預設值。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 為服務的執行期設定。
type Config struct {
	Addr     string `mapstructure:"addr"`
	DataFile string `mapstructure:"data_file"`
	LogLevel string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"addr":      ":8080",
	"data_file": "data.json",
	"log_level": "info",
}

// envBindings 對應設定鍵與環境變數；第一個名稱優先。
var envBindings = map[string][]string{
	"addr":      {"BANK_ADDR", "ADDR"},
	"data_file": {"BANK_DATA_FILE"},
	"log_level": {"BANK_LOG_LEVEL", "LOG_LEVEL"},
}

// Load 讀取 envFile（空字串或檔案不存在時略過）後，從環境變數組出 Config。
// godotenv 不會覆蓋已存在的環境變數。
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}
