// 指示: miu200521358
// Package config は環境変数から実行設定を読み込む。
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config は環境変数で与える実行設定を表す。CLI引数が指定された項目は引数を優先する。
type Config struct {
	LogLevel     string `env:"MU_RIGTOOLS_LOG_LEVEL" envDefault:"info"`
	Lang         string `env:"MU_RIGTOOLS_LANG" envDefault:"ja"`
	TargetPrefix string `env:"MU_RIGTOOLS_TARGET_PREFIX" envDefault:"TGT"`
	ControlLayer string `env:"MU_RIGTOOLS_CONTROL_LAYER"`
}

// Load はプロセス環境変数から設定を読み込む。
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}
	return cfg, nil
}

// LoadFrom は与えた環境変数一覧から設定を読み込む。
func LoadFrom(environment map[string]string) (Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("環境変数の解析に失敗しました: %w", err)
	}
	return cfg, nil
}
