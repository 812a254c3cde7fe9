// Package report 合并各轮分析结果，生成最终的 MessageMap
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// NotAvailable 缺失值的占位
const NotAvailable = "N/A"

// Input 组装所需的全部输入
type Input struct {
	Analysis       model.Result[model.Analysis]
	Framework      model.Result[model.AdFramework]
	Categorization *model.Result[model.AwarenessBuckets] // nil 表示未执行归类
	Records        []model.SourceRecord                  // 为空时不生成原始数据统计
	Metadata       model.Metadata
}

// Assembler 报告组装器，generated_at 与 run_id 只在这里赋值
type Assembler struct {
	now   func() time.Time
	newID func() string
}

// Option 组装器选项
type Option func(*Assembler)

// WithClock 指定时间来源
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// WithIDGenerator 指定 run_id 生成方式
func WithIDGenerator(newID func() string) Option {
	return func(a *Assembler) { a.newID = newID }
}

// NewAssembler 创建组装器
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble 合并分析结果
//
// 降级的轮次贡献空字段，其原文或错误信息记录在 passes 中。
func (a *Assembler) Assemble(in Input) *model.MessageMap {
	analysis := in.Analysis.OrZero()
	fw := in.Framework.OrZero()

	meta := in.Metadata
	if meta.Sources == nil {
		meta.Sources = map[string]bool{}
	}

	mm := &model.MessageMap{
		GeneratedAt: a.now().Format(time.RFC3339),
		RunID:       a.newID(),
		Metadata:    meta,

		ExecutiveSummary:      Summarize(analysis),
		EmotionalIntelligence: analysis.EmotionalPatterns,
		PainPoints:            analysis.PainPoints,
		DesireTriggers:        analysis.DesireTriggers,
		AwarenessStages:       analysis.AwarenessStages,
		LanguagePatterns:      analysis.LanguagePatterns,
		AdReadyHooks:          fw.Hooks,
		BodyCopyFrameworks:    fw.BodyCopyFrameworks,
		HeadlineFormulas:      fw.HeadlineFormulas,
		CallToActions:         fw.CallToActionSuggestions,
		ObjectionHandlers:     fw.ObjectionHandlers,
		KeyInsights:           analysis.KeyInsights,

		RawDataSummary: SummarizeRecords(in.Records),
		Passes: model.Passes{
			Analysis:    in.Analysis.Status(),
			AdFramework: in.Framework.Status(),
		},
	}

	if in.Categorization != nil {
		status := in.Categorization.Status()
		mm.Passes.Categorization = &status
		if buckets, ok := in.Categorization.Value(); ok {
			mm.AwarenessBuckets = &buckets
		}
	}
	return mm
}

// Summarize 执行摘要
//
// 模型输出的列表顺序被当作重要性排序，取第一项；列表为空时为 N/A。
func Summarize(a model.Analysis) model.ExecutiveSummary {
	s := model.ExecutiveSummary{
		TopPainPoint:           NotAvailable,
		DominantEmotion:        NotAvailable,
		PrimaryDesire:          NotAvailable,
		TotalEmotionalPatterns: len(a.EmotionalPatterns),
		TotalPainPoints:        len(a.PainPoints),
		TotalDesireTriggers:    len(a.DesireTriggers),
	}
	if len(a.PainPoints) > 0 {
		s.TopPainPoint = a.PainPoints[0].Description
	}
	if len(a.EmotionalPatterns) > 0 {
		s.DominantEmotion = a.EmotionalPatterns[0].Emotion
	}
	if len(a.DesireTriggers) > 0 {
		s.PrimaryDesire = a.DesireTriggers[0].Desire
	}
	return s
}

// SummarizeRecords 原始数据统计，没有记录时返回 nil
func SummarizeRecords(records []model.SourceRecord) *model.RawDataSummary {
	if len(records) == 0 {
		return nil
	}
	sources := make(map[string]int)
	for _, rec := range records {
		src := rec.Source
		if src == "" {
			src = "unknown"
		}
		sources[src]++
	}
	return &model.RawDataSummary{
		TotalItems: len(records),
		Sources:    sources,
		DateRange:  DateRangeOf(records),
	}
}

// DateRangeOf 按字符串字典序取最早与最晚时间
//
// 只有各数据源都输出 ISO-8601 形式的时间时结果才与真实时间顺序一致。
func DateRangeOf(records []model.SourceRecord) model.DateRange {
	var earliest, latest string
	found := false
	for _, rec := range records {
		ts, ok := rec.Timestamp()
		if !ok {
			continue
		}
		if !found || ts < earliest {
			earliest = ts
		}
		if !found || ts > latest {
			latest = ts
		}
		found = true
	}
	if !found {
		return model.DateRange{Earliest: NotAvailable, Latest: NotAvailable}
	}
	return model.DateRange{Earliest: earliest, Latest: latest}
}
