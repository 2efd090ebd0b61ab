// Package config 加载 Actor 系统配置
//
// 配置按以下顺序合并，后者覆盖前者：
//
//  1. [DefaultConfig] 中的默认值
//  2. YAML 或 JSON 配置文件（按扩展名选择解析器）
//
// 也可以通过 [LoadBytes] 从内存中加载。
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/lwmacct/251218-go-pkg-actor/pkg/actor"
)

// 配置错误
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Config 根配置
type Config struct {
	System SystemConfig `koanf:"system"`
	Log    LogConfig    `koanf:"log"`
}

// SystemConfig Actor 系统配置
type SystemConfig struct {
	// Name 系统名称
	Name string `koanf:"name"`
	// MailboxCapacity 默认邮箱容量
	MailboxCapacity int `koanf:"mailbox_capacity"`
	// LogDeadLetters 是否记录丢弃的消息
	LogDeadLetters bool `koanf:"log_dead_letters"`
	// ShutdownTimeout 关闭时等待消息循环退出的时间
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level debug / info / warn / error
	Level string `koanf:"level"`
	// Format text / json
	Format string `koanf:"format"`
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		System: SystemConfig{
			Name:            "actor",
			MailboxCapacity: 16,
			LogDeadLetters:  true,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 从文件加载配置，path 为空时只使用默认值
func Load(path string) (*Config, error) {
	k, err := defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		parser, err := parserFor(strings.TrimPrefix(filepath.Ext(path), "."))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	return unmarshal(k)
}

// LoadBytes 从内存加载配置，format 为 yaml、yml 或 json
func LoadBytes(b []byte, format string) (*Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k, err := defaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(rawbytes.Provider(b), parser); err != nil {
		return nil, fmt.Errorf("load bytes: %w", err)
	}

	return unmarshal(k)
}

func defaults() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	return k, nil
}

func parserFor(format string) (koanf.Parser, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Parser(), nil
	case "json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.System.MailboxCapacity <= 0 {
		return fmt.Errorf("%w: system.mailbox_capacity must be > 0, got %d",
			ErrInvalidConfig, c.System.MailboxCapacity)
	}
	if c.System.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: system.shutdown_timeout must be > 0, got %s",
			ErrInvalidConfig, c.System.ShutdownTimeout)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// ActorSystem 转换为 [actor.SystemConfig]
func (c *Config) ActorSystem(logger *slog.Logger) *actor.SystemConfig {
	cfg := actor.DefaultSystemConfig()
	cfg.LogDeadLetters = c.System.LogDeadLetters
	cfg.Logger = logger
	return cfg
}

// NewLogger 按日志配置创建 logger
func NewLogger(c LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalidConfig, c.Format)
	}
	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, s)
	}
	return level, nil
}
