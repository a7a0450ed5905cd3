package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是 matchkit 服务的顶层配置（YAML）。
//
// 示例：
//
//	matching:
//	  scaling: none          # none / minmax / standard
//	store:
//	  backend: redis         # memory / redis
//	  addr: "localhost:6379"
//	  db: 0
//	feast:
//	  endpoint: "localhost:6565"
//	  project: "matchkit"
//	rules:
//	  - 'course.delivery_mode == "online" && centre.risk_score < 3.0'
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Store    StoreConfig    `yaml:"store"`
	Feast    FeastConfig    `yaml:"feast"`

	// Rules 运营侧剔除规则（CEL 表达式，求值为 true 的候选被剔除）
	Rules []string `yaml:"rules"`
}

// MatchingConfig 匹配核心配置。
type MatchingConfig struct {
	// Scaling 机构特征缩放方式：none（默认）/ minmax / standard
	Scaling string `yaml:"scaling"`
}

// StoreConfig 实体存储配置。
type StoreConfig struct {
	// Backend 存储后端：memory（默认）/ redis
	Backend string `yaml:"backend"`

	// Addr Redis 地址（backend=redis 时必填）
	Addr string `yaml:"addr"`

	// DB Redis 库号
	DB int `yaml:"db"`
}

// FeastConfig 外部注记（Feast）配置；Endpoint 为空表示不启用。
type FeastConfig struct {
	// Endpoint Feast Feature Server 的 gRPC 端点，如 "localhost:6565"
	Endpoint string `yaml:"endpoint"`

	// Project 项目名称
	Project string `yaml:"project"`

	// RiskFeature / TierFeature / EntityKey 特征名与实体 key（可选，留空用默认）
	RiskFeature string `yaml:"risk_feature"`
	TierFeature string `yaml:"tier_feature"`
	EntityKey   string `yaml:"entity_key"`
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return &cfg, nil
}
