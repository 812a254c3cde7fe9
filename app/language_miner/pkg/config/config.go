package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingLLMKey 未配置模型 API Key
var ErrMissingLLMKey = errors.New("llm api key is required (set llm.api_key or LLM_API_KEY)")

// 模型提供方
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config 项目配置结构体
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Scraping ScrapingConfig `yaml:"scraping"`
	Sources  SourcesConfig  `yaml:"sources"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider            string `yaml:"provider"` // openai（默认，兼容 OpenAI 协议的服务）/ gemini
	BaseURL             string `yaml:"base_url"`
	APIKey              string `yaml:"api_key"`
	Model               string `yaml:"model"`
	MaxTokens           int    `yaml:"max_tokens"`            // 模式提取
	FrameworkMaxTokens  int    `yaml:"framework_max_tokens"`  // 文案框架
	CategorizeMaxTokens int    `yaml:"categorize_max_tokens"` // 认知阶段归类
	Timeout             int    `yaml:"timeout"`               // 秒
}

// TimeoutDuration 单次调用超时
func (c LLMConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ScrapingConfig 数据采集配置
type ScrapingConfig struct {
	MaxItemsPerSource int     `yaml:"max_items_per_source"`
	RequestTimeout    int     `yaml:"request_timeout"`  // 秒
	RateLimitDelay    float64 `yaml:"rate_limit_delay"` // 两次请求之间的间隔（秒）
}

// RequestTimeoutDuration HTTP 请求超时
func (c ScrapingConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Delay 请求间隔
func (c ScrapingConfig) Delay() time.Duration {
	return time.Duration(c.RateLimitDelay * float64(time.Second))
}

// SourcesConfig 各数据源配置
type SourcesConfig struct {
	Reddit  RedditConfig  `yaml:"reddit"`
	Amazon  AmazonConfig  `yaml:"amazon"`
	YouTube YouTubeConfig `yaml:"youtube"`
}

// RedditConfig 论坛数据源
type RedditConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	UserAgent    string   `yaml:"user_agent"`
	BaseURL      string   `yaml:"base_url"`
	TokenURL     string   `yaml:"token_url"`
	Subreddits   []string `yaml:"subreddits"`
	TimeFilter   string   `yaml:"time_filter"`
	CommentLimit int      `yaml:"comment_limit"`
}

// AmazonConfig 电商评论数据源
type AmazonConfig struct {
	BaseURL           string `yaml:"base_url"`
	UserAgent         string `yaml:"user_agent"`
	MaxProducts       int    `yaml:"max_products"`
	ReviewsPerProduct int    `yaml:"reviews_per_product"`
}

// YouTubeConfig 视频评论数据源
type YouTubeConfig struct {
	APIKey           string `yaml:"api_key"`
	Endpoint         string `yaml:"endpoint"`
	MaxVideos        int    `yaml:"max_videos"`
	RepliesPerThread int    `yaml:"replies_per_thread"`
}

// AnalysisConfig 分析配置
type AnalysisConfig struct {
	Categorize bool `yaml:"categorize"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Format         string `yaml:"format"` // json / markdown / html / all
	Directory      string `yaml:"directory"`
	IncludeRawData bool   `yaml:"include_raw_data"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 配置文件不存在时使用的默认配置
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:            ProviderOpenAI,
			Model:               "gpt-4o",
			MaxTokens:           4000,
			FrameworkMaxTokens:  3000,
			CategorizeMaxTokens: 3000,
			Timeout:             120,
		},
		Scraping: ScrapingConfig{
			MaxItemsPerSource: 100,
			RequestTimeout:    30,
			RateLimitDelay:    2,
		},
		Sources: SourcesConfig{
			Reddit: RedditConfig{
				UserAgent:    "CustomerLanguageMiner/1.0",
				BaseURL:      "https://oauth.reddit.com",
				TokenURL:     "https://www.reddit.com/api/v1/access_token",
				TimeFilter:   "month",
				CommentLimit: 20,
			},
			Amazon: AmazonConfig{
				BaseURL:           "https://www.amazon.com",
				UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
				MaxProducts:       5,
				ReviewsPerProduct: 50,
			},
			YouTube: YouTubeConfig{
				MaxVideos:        10,
				RepliesPerThread: 5,
			},
		},
		Output: OutputConfig{
			Format:         "markdown",
			Directory:      "./output",
			IncludeRawData: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig 从指定路径加载配置
//
// 先加载当前目录的 .env，配置文件不存在时返回默认配置，空的凭证字段由环境变量补齐。
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("LLM_API_KEY")
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case ProviderGemini:
			c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = os.Getenv("LLM_BASE_URL")
	}

	r := &c.Sources.Reddit
	if r.ClientID == "" {
		r.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	}
	if r.ClientSecret == "" {
		r.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	}
	if v := os.Getenv("REDDIT_USER_AGENT"); v != "" {
		r.UserAgent = v
	}

	if c.Sources.YouTube.APIKey == "" {
		c.Sources.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
}

// applyDefaults 配置文件里显式写成 0 或空的字段回落到默认值
func (c *Config) applyDefaults() {
	def := Default()
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if c.LLM.FrameworkMaxTokens <= 0 {
		c.LLM.FrameworkMaxTokens = def.LLM.FrameworkMaxTokens
	}
	if c.LLM.CategorizeMaxTokens <= 0 {
		c.LLM.CategorizeMaxTokens = def.LLM.CategorizeMaxTokens
	}
	if c.Scraping.MaxItemsPerSource <= 0 {
		c.Scraping.MaxItemsPerSource = def.Scraping.MaxItemsPerSource
	}
	if c.Output.Directory == "" {
		c.Output.Directory = def.Output.Directory
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
}

// Validate 检查运行前必需的配置
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return ErrMissingLLMKey
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	return nil
}
