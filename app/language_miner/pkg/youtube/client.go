package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
)

const maxPageSize = 100

// ErrMissingAPIKey 未配置 YouTube Data API Key
var ErrMissingAPIKey = errors.New("youtube api key is required")

// Video 搜索到的视频
type Video struct {
	ID           string
	Title        string
	ChannelTitle string
	PublishedAt  string
}

// URL 视频页面地址
func (v Video) URL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// Client YouTube 评论抓取
type Client struct {
	service          *youtube.Service
	maxVideos        int64
	repliesPerThread int64
	timeout          time.Duration
	limiter          *rate.Limiter
}

// Ensure Client implements source.Connector
var _ source.Connector = (*Client)(nil)

// NewClient 创建 YouTube 客户端
func NewClient(ctx context.Context, cfg config.YouTubeConfig, scraping config.ScrapingConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:          service,
		maxVideos:        int64(cfg.MaxVideos),
		repliesPerThread: int64(cfg.RepliesPerThread),
		timeout:          scraping.RequestTimeoutDuration(),
		limiter:          source.NewLimiter(scraping.Delay()),
	}, nil
}

// Name 实现 source.Connector
func (c *Client) Name() string {
	return source.NameYouTube
}

// Fetch 搜索视频并抓取每个视频的评论，MaxItems 为每个视频的评论数上限
func (c *Client) Fetch(ctx context.Context, req *source.Request) ([]model.SourceRecord, error) {
	videos, err := c.SearchVideos(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("找到 %d 个视频", len(videos))

	var records []model.SourceRecord
	for i, v := range videos {
		logger.Log.Infof("正在抓取视频 %d/%d: %s", i+1, len(videos), v.Title)
		recs, err := c.VideoComments(ctx, v, req.MaxItems)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			logger.Log.Errorf("抓取视频 %s 评论失败: %v", v.ID, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}

// SearchVideos 按相关度搜索视频
func (c *Client) SearchVideos(ctx context.Context, query string) ([]Video, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(c.maxVideos).
		Order("relevance").
		Context(callCtx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, Video{
			ID:           item.Id.VideoId,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}
	return videos, nil
}

// VideoComments 分页抓取视频的顶层评论及部分回复；出错时返回已抓到的部分
func (c *Client) VideoComments(ctx context.Context, v Video, maxComments int) ([]model.SourceRecord, error) {
	if maxComments <= 0 {
		maxComments = maxPageSize
	}

	var records []model.SourceRecord
	pageToken := ""
	for len(records) < maxComments {
		if err := c.limiter.Wait(ctx); err != nil {
			return records, err
		}
		callCtx, cancel := c.callContext(ctx)
		call := c.service.CommentThreads.List([]string{"snippet"}).
			VideoId(v.ID).
			MaxResults(int64(min(maxPageSize, maxComments-len(records)))).
			Order("relevance").
			TextFormat("plainText").
			Context(callCtx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		cancel()
		if err != nil {
			return records, fmt.Errorf("list comment threads: %w", err)
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
				continue
			}
			top := item.Snippet.TopLevelComment.Snippet
			rec := model.SourceRecord{
				Source:      model.SourceVideo,
				Platform:    "youtube",
				ID:          item.Id,
				Container:   v.ID,
				Title:       v.Title,
				Text:        top.TextDisplay,
				Author:      top.AuthorDisplayName,
				Score:       top.LikeCount,
				PublishedAt: top.PublishedAt,
				URL:         v.URL(),
			}
			if item.Snippet.TotalReplyCount > 0 && c.repliesPerThread > 0 {
				replies, err := c.Replies(ctx, item.Id)
				if err != nil {
					logger.Log.Warnf("获取评论 %s 的回复失败: %v", item.Id, err)
				}
				rec.Replies = replies
			}
			records = append(records, rec)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	if len(records) > maxComments {
		records = records[:maxComments]
	}
	return records, nil
}

// Replies 顶层评论的回复
func (c *Client) Replies(ctx context.Context, parentID string) ([]model.Comment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.Comments.List([]string{"snippet"}).
		ParentId(parentID).
		MaxResults(c.repliesPerThread).
		TextFormat("plainText").
		Context(callCtx).
		Do()
	if err != nil {
		return nil, err
	}

	replies := make([]model.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		replies = append(replies, model.Comment{
			Text:        item.Snippet.TextDisplay,
			Author:      item.Snippet.AuthorDisplayName,
			Score:       item.Snippet.LikeCount,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}
	return replies, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
