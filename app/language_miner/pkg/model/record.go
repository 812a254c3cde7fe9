package model

// 数据源标签
const (
	SourceForum  = "forum"  // 论坛帖子与评论
	SourceRetail = "retail" // 电商评论
	SourceVideo  = "video"  // 视频评论
)

// SourceRecord 数据源返回的一条原始记录
type SourceRecord struct {
	Source      string    `json:"source"`             // forum / retail / video
	Platform    string    `json:"platform,omitempty"` // reddit / amazon / youtube
	ID          string    `json:"id,omitempty"`
	Container   string    `json:"container,omitempty"` // subreddit / ASIN / video id
	Title       string    `json:"title,omitempty"`
	Text        string    `json:"text,omitempty"`
	Author      string    `json:"author,omitempty"`
	URL         string    `json:"url,omitempty"`
	Score       int64     `json:"score"` // 点赞 / 有用票数
	Rating      float64   `json:"rating,omitempty"`
	Verified    bool      `json:"verified_purchase,omitempty"`
	CreatedUTC  string    `json:"created_utc,omitempty"`
	PublishedAt string    `json:"published_at,omitempty"`
	Date        string    `json:"date,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	Replies     []Comment `json:"replies,omitempty"`
}

// Comment 嵌套的评论或回复
type Comment struct {
	Text        string    `json:"text"`
	Author      string    `json:"author,omitempty"`
	Score       int64     `json:"score"`
	CreatedUTC  string    `json:"created_utc,omitempty"`
	PublishedAt string    `json:"published_at,omitempty"`
	Replies     []Comment `json:"replies,omitempty"`
}

// Timestamp 按 created_utc > published_at > date 的优先级返回第一个非空时间字段
func (r SourceRecord) Timestamp() (string, bool) {
	for _, ts := range []string{r.CreatedUTC, r.PublishedAt, r.Date} {
		if ts != "" {
			return ts, true
		}
	}
	return "", false
}
