// Package source 定义数据源连接器的通用接口
package source

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// 连接器名称，与 metadata.sources 中的键一致
const (
	NameReddit  = "reddit"
	NameAmazon  = "amazon"
	NameYouTube = "youtube"
)

// Connector 数据源连接器，返回符合记录约定的原始数据
type Connector interface {
	Name() string
	Fetch(ctx context.Context, req *Request) ([]model.SourceRecord, error)
}

// Request 通用采集请求
type Request struct {
	Query    string
	MaxItems int      // 每个数据源的条数上限
	Targets  []string // 数据源内的目标，如 subreddit 列表；为空时使用配置
}

// NewLimiter 按固定间隔放行请求，delay <= 0 时不限速
func NewLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// UserAgentTransport 为每个请求设置 User-Agent 及附加请求头
type UserAgentTransport struct {
	UserAgent string
	Header    http.Header
	Base      http.RoundTripper
}

// RoundTrip 实现 http.RoundTripper
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.UserAgent != "" {
		r.Header.Set("User-Agent", t.UserAgent)
	}
	for k, vs := range t.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}

// NewHTTPClient 带超时和 User-Agent 的 HTTP 客户端
func NewHTTPClient(timeout time.Duration, userAgent string, header http.Header) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &UserAgentTransport{UserAgent: userAgent, Header: header},
	}
}
