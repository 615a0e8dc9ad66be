package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/douhashi/labeler/internal/tracker"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// TrackerLinear selects the Linear backend.
	TrackerLinear = "linear"
	// TrackerGitHub selects the GitHub Issues backend.
	TrackerGitHub = "github"

	// EnvPrefix is the prefix of labeler-specific environment variables.
	EnvPrefix = "LABELER"

	defaultLinearEndpoint = "https://api.linear.app/graphql"
)

// Config はアプリケーション全体の設定
type Config struct {
	Tracker string       `mapstructure:"tracker" yaml:"tracker"`
	Linear  LinearConfig `mapstructure:"linear" yaml:"linear"`
	GitHub  GitHubConfig `mapstructure:"github" yaml:"github"`
	Labels  LabelsConfig `mapstructure:"labels" yaml:"labels"`
	Branch  BranchConfig `mapstructure:"branch" yaml:"branch"`
}

// LinearConfig はLinear関連の設定
type LinearConfig struct {
	APIKey     string `mapstructure:"api_key" yaml:"-"`
	OAuthToken string `mapstructure:"oauth_token" yaml:"-"`
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token      string `mapstructure:"token" yaml:"-"`
	Repository string `mapstructure:"repository" yaml:"repository,omitempty"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url,omitempty"`
}

// LabelsConfig はラベル名のエイリアス設定
type LabelsConfig struct {
	Aliases map[string]string `mapstructure:"aliases" yaml:"aliases"`
}

// BranchConfig はCIステップのブランチ制限
type BranchConfig struct {
	// Prefixes limits the CI step to branches starting with one of them; empty means all branches.
	Prefixes []string `mapstructure:"prefixes" yaml:"prefixes"`
}

// envBindings maps config keys to the well-known variables read besides LABELER_*.
var envBindings = map[string][]string{
	"linear.api_key":     {"LINEAR_API_KEY"},
	"linear.oauth_token": {"LINEAR_OAUTH_TOKEN"},
	"github.token":       {"GITHUB_TOKEN"},
	"github.repository":  {"GITHUB_REPOSITORY"},
	"github.base_url":    {"GITHUB_API_URL"},
}

// DefaultAliases returns the built-in label aliases.
func DefaultAliases() map[string]string {
	return map[string]string{
		"codex": "Executed by Codex",
	}
}

// NewConfig は新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		Tracker: TrackerLinear,
		Linear: LinearConfig{
			Endpoint: defaultLinearEndpoint,
		},
		Labels: LabelsConfig{
			Aliases: DefaultAliases(),
		},
		Branch: BranchConfig{
			Prefixes: []string{},
		},
	}
}

// DefaultPath は設定ファイルのデフォルトパスを返す
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "labeler", "labeler.yml")
}

// Load は設定ファイルと環境変数から設定を読み込む。
// configPath が空の場合は環境変数とデフォルト値のみを使う。
func (c *Config) Load(configPath string) error {
	v := viper.New()

	// 環境変数の設定
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envBindings {
		envNames := append([]string{envName(key)}, names...)
		if err := v.BindEnv(append([]string{key}, envNames...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// デフォルト値の設定
	defaults := NewConfig()
	v.SetDefault("tracker", defaults.Tracker)
	v.SetDefault("linear.endpoint", defaults.Linear.Endpoint)
	v.SetDefault("labels.aliases", defaults.Labels.Aliases)
	v.SetDefault("branch.prefixes", defaults.Branch.Prefixes)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	c.Tracker = strings.ToLower(strings.TrimSpace(c.Tracker))
	c.Labels.Aliases = normalizeAliases(c.Labels.Aliases)
	return nil
}

// LoadOrDefault は設定ファイルを読み込み、ファイルが無い場合は環境変数とデフォルト値のみを使う。
// 実際に読み込んだ設定ファイルのパス（無い場合は空文字）を返す。
func (c *Config) LoadOrDefault(configPath string) (string, error) {
	if configPath == "" {
		configPath = DefaultPath()
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("failed to access config file: %w", err)
			}
			configPath = ""
		}
	}
	if err := c.Load(configPath); err != nil {
		return "", err
	}
	return configPath, nil
}

// LoadDotEnv は.envファイルの値を未設定の環境変数にだけ反映する。
// ファイルが存在しない場合は何もしない。
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	switch c.Tracker {
	case TrackerLinear:
		if strings.TrimSpace(c.Linear.APIKey) == "" && strings.TrimSpace(c.Linear.OAuthToken) == "" {
			return tracker.ConfigurationError("Linear API key is required (set LINEAR_API_KEY)")
		}
	case TrackerGitHub:
		if strings.TrimSpace(c.GitHub.Token) == "" {
			return tracker.ConfigurationError("GitHub token is required (set GITHUB_TOKEN)")
		}
	default:
		return tracker.ConfigurationError("unknown tracker %q (want %s or %s)", c.Tracker, TrackerLinear, TrackerGitHub)
	}
	return nil
}

// Save は設定をYAMLとして書き出す。認証情報は書き出さない。
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	header := "# labeler configuration\n# Credentials are read from LINEAR_API_KEY / LINEAR_OAUTH_TOKEN / GITHUB_TOKEN.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func normalizeAliases(aliases map[string]string) map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}
