// Package analyzer 通过多轮模型调用提取客户语言中的情绪、痛点、欲望与文案素材
package analyzer

import (
	"context"
	"strconv"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/llm"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// 各轮调用的采样温度
const (
	AnalysisTemperature   float32 = 0.3
	FrameworkTemperature  float32 = 0.4
	CategorizeTemperature float32 = 0.2
)

// Options 各轮调用的输出上限
type Options struct {
	MaxTokens           int
	FrameworkMaxTokens  int
	CategorizeMaxTokens int
}

// Analyzer 分析编排器
//
// 每轮只调用一次模型，不重试；失败和结构不符都以 model.Result 的形式返回，不会向上抛错。
type Analyzer struct {
	client llm.Client
	opts   Options
}

// New 创建分析器，未设置的上限使用默认值
func New(client llm.Client, opts Options) *Analyzer {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4000
	}
	if opts.FrameworkMaxTokens <= 0 {
		opts.FrameworkMaxTokens = 3000
	}
	if opts.CategorizeMaxTokens <= 0 {
		opts.CategorizeMaxTokens = 3000
	}
	return &Analyzer{client: client, opts: opts}
}

// AnalyzeBatch 模式提取
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, productContext string) model.Result[model.Analysis] {
	if len(texts) > MaxBatchUnits {
		logger.Log.Infof("文本共 %d 条，仅分析前 %d 条", len(texts), MaxBatchUnits)
	}
	prompt := BuildAnalysisPrompt(texts, productContext)

	resp, err := a.client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: AnalysisTemperature,
	})
	if err != nil {
		logger.Log.Errorf("模式提取调用失败: %v", err)
		return model.Failed[model.Analysis](err)
	}

	var analysis model.Analysis
	if err := decodeObject(resp, analysisKeys, &analysis); err != nil {
		logger.Log.Warnf("模式提取结果无法解析，保留原文: %v", err)
		return model.Raw[model.Analysis](resp)
	}
	return model.Structured(analysis)
}

// GenerateAdFramework 根据模式提取结果生成文案框架
//
// 上一轮降级时，把原文或错误信息作为分析数据交给模型。
func (a *Analyzer) GenerateAdFramework(ctx context.Context, analysis model.Result[model.Analysis]) model.Result[model.AdFramework] {
	prompt, err := BuildFrameworkPrompt(frameworkInput(analysis))
	if err != nil {
		return model.Failed[model.AdFramework](err)
	}

	resp, err := a.client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   a.opts.FrameworkMaxTokens,
		Temperature: FrameworkTemperature,
	})
	if err != nil {
		logger.Log.Errorf("文案框架调用失败: %v", err)
		return model.Failed[model.AdFramework](err)
	}

	var fw model.AdFramework
	if err := decodeObject(resp, frameworkKeys, &fw); err != nil {
		logger.Log.Warnf("文案框架结果无法解析，保留原文: %v", err)
		return model.Raw[model.AdFramework](resp)
	}
	return model.Structured(fw)
}

func frameworkInput(analysis model.Result[model.Analysis]) any {
	switch analysis.Kind() {
	case model.KindStructured:
		v, _ := analysis.Value()
		return v
	case model.KindRaw:
		return map[string]string{"raw_analysis": analysis.RawText()}
	default:
		return map[string]string{"error": analysis.ErrMessage()}
	}
}

// Categorization 模型给出的单条归类
type Categorization struct {
	TextIndex  model.FlexString `json:"text_index"`
	Stage      string           `json:"stage"`
	Confidence model.FlexString `json:"confidence"`
	Reasoning  string           `json:"reasoning"`
}

type categorizeResponse struct {
	Categorized []Categorization `json:"categorized"`
}

// CategorizeByAwareness 把带正文的记录（最多 MaxCategorizeItems 条）按认知阶段归类
//
// 模型返回的下标指向送入的记录列表，越界或阶段未知的条目直接丢弃。
func (a *Analyzer) CategorizeByAwareness(ctx context.Context, records []model.SourceRecord) model.Result[model.AwarenessBuckets] {
	items := make([]model.SourceRecord, 0, MaxCategorizeItems)
	for _, rec := range records {
		if rec.Text == "" {
			continue
		}
		items = append(items, rec)
		if len(items) == MaxCategorizeItems {
			break
		}
	}
	if len(items) == 0 {
		return model.Structured(model.AwarenessBuckets{})
	}

	texts := make([]string, len(items))
	for i, rec := range items {
		texts[i] = rec.Text
	}
	prompt, err := BuildCategorizePrompt(texts)
	if err != nil {
		return model.Failed[model.AwarenessBuckets](err)
	}

	resp, err := a.client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   a.opts.CategorizeMaxTokens,
		Temperature: CategorizeTemperature,
	})
	if err != nil {
		logger.Log.Errorf("认知阶段归类调用失败: %v", err)
		return model.Failed[model.AwarenessBuckets](err)
	}

	var parsed categorizeResponse
	if err := decodeObject(resp, []string{"categorized"}, &parsed); err != nil {
		logger.Log.Warnf("认知阶段归类结果无法解析，保留原文: %v", err)
		return model.Raw[model.AwarenessBuckets](resp)
	}

	var buckets model.AwarenessBuckets
	dropped := 0
	for _, c := range parsed.Categorized {
		idx, err := strconv.Atoi(c.TextIndex.String())
		if err != nil || idx < 0 || idx >= len(items) {
			dropped++
			continue
		}
		if !buckets.Add(c.Stage, items[idx]) {
			dropped++
		}
	}
	if dropped > 0 {
		logger.Log.Debugf("丢弃 %d 条无效归类", dropped)
	}
	return model.Structured(buckets)
}
