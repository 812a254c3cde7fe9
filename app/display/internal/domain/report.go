package domain

import "errors"

// ErrReportNotFound 报告不存在
var ErrReportNotFound = errors.New("report not found")

// ReportSummary 报告摘要信息
type ReportSummary struct {
	ID              string `json:"id"`
	GeneratedAt     string `json:"generated_at"`
	RunID           string `json:"run_id"`
	Query           string `json:"query"`
	TopPainPoint    string `json:"top_pain_point"`
	DominantEmotion string `json:"dominant_emotion"`
	PrimaryDesire   string `json:"primary_desire"`
	TotalItems      int    `json:"total_items"`
}

// ReportList 分页结果
type ReportList struct {
	Reports []*ReportSummary `json:"reports"`
	Total   int              `json:"total"`
}
