// Package corpus 把嵌套的原始记录展开成扁平的文本单元序列
package corpus

import (
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// UnitKind 文本单元的来源类型
type UnitKind string

const (
	KindBody    UnitKind = "body"
	KindTitle   UnitKind = "title"
	KindComment UnitKind = "comment"
	KindReply   UnitKind = "reply"
)

// TextUnit 一段文本及其出处
type TextUnit struct {
	Text        string
	RecordIndex int
	Kind        UnitKind
	Depth       int // 0 为记录本身，评论从 1 开始
}

// Build 按文档顺序抽取所有非空文本
//
// 每条记录依次输出正文、标题（与正文不同时）、评论（每条评论后紧跟其回复），最后是记录自身的回复。
func Build(records []model.SourceRecord) []TextUnit {
	var units []TextUnit
	for i, rec := range records {
		if rec.Text != "" {
			units = append(units, TextUnit{Text: rec.Text, RecordIndex: i, Kind: KindBody})
		}
		if rec.Title != "" && rec.Title != rec.Text {
			units = append(units, TextUnit{Text: rec.Title, RecordIndex: i, Kind: KindTitle})
		}
		units = appendComments(units, rec.Comments, i, KindComment, 1)
		units = appendComments(units, rec.Replies, i, KindReply, 1)
	}
	return units
}

func appendComments(units []TextUnit, comments []model.Comment, idx int, kind UnitKind, depth int) []TextUnit {
	for _, c := range comments {
		if c.Text != "" {
			units = append(units, TextUnit{Text: c.Text, RecordIndex: idx, Kind: kind, Depth: depth})
		}
		units = appendComments(units, c.Replies, idx, KindReply, depth+1)
	}
	return units
}

// Texts 只取文本
func Texts(units []TextUnit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Text
	}
	return out
}
