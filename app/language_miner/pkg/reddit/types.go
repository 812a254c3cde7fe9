package reddit

import (
	"encoding/json"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// Listing Reddit 列表响应
type Listing struct {
	Kind string `json:"kind"`
	Data struct {
		After    string  `json:"after"`
		Children []Thing `json:"children"`
	} `json:"data"`
}

// Thing 列表中的单个对象，t1 为评论，t3 为帖子
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Post 帖子
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Score       int64   `json:"score"`
	CreatedUTC  float64 `json:"created_utc"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
}

func (p Post) record(sub string) model.SourceRecord {
	return model.SourceRecord{
		Source:     model.SourceForum,
		Platform:   "reddit",
		ID:         p.ID,
		Container:  sub,
		Title:      p.Title,
		Text:       p.Selftext,
		Author:     p.Author,
		Score:      p.Score,
		CreatedUTC: formatUnix(p.CreatedUTC),
		URL:        "https://reddit.com" + p.Permalink,
	}
}

type commentData struct {
	Body       string          `json:"body"`
	Author     string          `json:"author"`
	Score      int64           `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
}
