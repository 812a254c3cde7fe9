package reddit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
)

// ErrMissingCredentials 未配置 Reddit 应用凭证
var ErrMissingCredentials = errors.New("reddit client id and secret are required")

// Client Reddit API 客户端（仅应用授权）
type Client struct {
	baseURL      string
	timeFilter   string
	commentLimit int
	subreddits   []string
	client       *http.Client
	limiter      *rate.Limiter
}

// Ensure Client implements source.Connector
var _ source.Connector = (*Client)(nil)

// NewClient 创建 Reddit 客户端
func NewClient(cfg config.RedditConfig, scraping config.ScrapingConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	// token 请求和 API 请求都需要带 User-Agent
	base := source.NewHTTPClient(scraping.RequestTimeoutDuration(), cfg.UserAgent, nil)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	httpClient := cc.Client(ctx)
	httpClient.Timeout = base.Timeout

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		timeFilter:   cfg.TimeFilter,
		commentLimit: cfg.CommentLimit,
		subreddits:   cfg.Subreddits,
		client:       httpClient,
		limiter:      source.NewLimiter(scraping.Delay()),
	}, nil
}

// Name 实现 source.Connector
func (c *Client) Name() string {
	return source.NameReddit
}

// Fetch 在每个 subreddit 中搜索帖子并抓取热门评论，单个 subreddit 失败时跳过
func (c *Client) Fetch(ctx context.Context, req *source.Request) ([]model.SourceRecord, error) {
	subs := req.Targets
	if len(subs) == 0 {
		subs = c.subreddits
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("no subreddits configured")
	}

	var records []model.SourceRecord
	for _, sub := range subs {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		logger.Log.Infof("正在抓取 r/%s ...", sub)
		recs, err := c.scrapeSubreddit(ctx, sub, req.Query, req.MaxItems)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			logger.Log.Errorf("抓取 r/%s 失败: %v", sub, err)
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (c *Client) scrapeSubreddit(ctx context.Context, sub, query string, limit int) ([]model.SourceRecord, error) {
	posts, err := c.Search(ctx, sub, query, limit)
	if err != nil {
		return nil, err
	}

	records := make([]model.SourceRecord, 0, len(posts))
	for _, p := range posts {
		rec := p.record(sub)
		comments, err := c.Comments(ctx, p.ID)
		if err != nil {
			logger.Log.Warnf("获取帖子 %s 的评论失败: %v", p.ID, err)
		} else {
			rec.Comments = comments
		}
		records = append(records, rec)
	}
	return records, nil
}

// Search 在 subreddit 内搜索帖子
func (c *Client) Search(ctx context.Context, sub, query string, limit int) ([]Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	q := url.Values{}
	q.Set("q", query)
	q.Set("restrict_sr", "1")
	q.Set("sort", "relevance")
	q.Set("t", c.timeFilter)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")

	var listing Listing
	if err := c.get(ctx, "/r/"+url.PathEscape(sub)+"/search", q, &listing); err != nil {
		return nil, err
	}

	var posts []Post
	for _, child := range listing.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var p Post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Comments 获取帖子的热门评论（含嵌套回复）
func (c *Client) Comments(ctx context.Context, postID string) ([]model.Comment, error) {
	q := url.Values{}
	q.Set("sort", "top")
	q.Set("limit", strconv.Itoa(c.commentLimit))
	q.Set("raw_json", "1")

	var listings []Listing
	if err := c.get(ctx, "/comments/"+url.PathEscape(postID), q, &listings); err != nil {
		return nil, err
	}
	if len(listings) < 2 {
		return nil, nil
	}
	comments := convertComments(listings[1])
	if c.commentLimit > 0 && len(comments) > c.commentLimit {
		comments = comments[:c.commentLimit]
	}
	return comments, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("reddit api error (status %d): %s", res.StatusCode, string(body))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

func convertComments(l Listing) []model.Comment {
	var out []model.Comment
	for _, child := range l.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var cd commentData
		if err := json.Unmarshal(child.Data, &cd); err != nil || cd.Body == "" {
			continue
		}
		cm := model.Comment{
			Text:       cd.Body,
			Author:     cd.Author,
			Score:      cd.Score,
			CreatedUTC: formatUnix(cd.CreatedUTC),
		}
		if replies, ok := cd.replyListing(); ok {
			cm.Replies = convertComments(replies)
		}
		out = append(out, cm)
	}
	return out
}

func formatUnix(sec float64) string {
	if sec <= 0 {
		return ""
	}
	return time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
}

// replyListing 没有回复时 API 返回空字符串而不是 Listing
func (cd commentData) replyListing() (Listing, bool) {
	raw := bytes.TrimSpace(cd.Replies)
	if len(raw) == 0 || raw[0] != '{' {
		return Listing{}, false
	}
	var l Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return Listing{}, false
	}
	return l, true
}
