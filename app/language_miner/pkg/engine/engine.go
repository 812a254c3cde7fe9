package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/analyzer"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/corpus"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/llm"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/report"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source/factory"
)

var (
	// ErrNoSources 没有可用的数据源
	ErrNoSources = errors.New("no source connector available")
	// ErrNoRecords 所有数据源都没有返回数据
	ErrNoRecords = errors.New("no data collected from any source")
)

// ProgressFunc 进度回调，progress 取值 0-100
type ProgressFunc func(status string, progress int)

// Engine 核心处理引擎
type Engine struct {
	connectors []source.Connector
	analyzer   *analyzer.Analyzer
	assembler  *report.Assembler
}

// New 使用已创建好的组件构造引擎
func New(connectors []source.Connector, an *analyzer.Analyzer, asm *report.Assembler) *Engine {
	if asm == nil {
		asm = report.NewAssembler()
	}
	return &Engine{connectors: connectors, analyzer: an, assembler: asm}
}

// NewEngine 根据配置创建引擎实例
func NewEngine(ctx context.Context, cfg *config.Config, enabled factory.Enabled) (*Engine, error) {
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	connectors, err := factory.NewConnectors(ctx, cfg, enabled)
	if err != nil {
		return nil, fmt.Errorf("数据源初始化失败: %w", err)
	}

	an := analyzer.New(client, analyzer.Options{
		MaxTokens:           cfg.LLM.MaxTokens,
		FrameworkMaxTokens:  cfg.LLM.FrameworkMaxTokens,
		CategorizeMaxTokens: cfg.LLM.CategorizeMaxTokens,
	})
	return New(connectors, an, nil), nil
}

// CollectOptions 采集选项
type CollectOptions struct {
	Query            string
	MaxItems         int                 // 每个数据源的条数上限
	Targets          map[string][]string // 数据源名称 -> 源内目标（如 subreddit）
	ProgressCallback ProgressFunc
}

// Collect 依次运行各数据源，单个数据源失败时记录日志并继续
func (e *Engine) Collect(ctx context.Context, opts CollectOptions) ([]model.SourceRecord, error) {
	if len(e.connectors) == 0 {
		return nil, ErrNoSources
	}

	progress := progressOf(opts.ProgressCallback)
	var records []model.SourceRecord
	for i, c := range e.connectors {
		progress(fmt.Sprintf("collecting %s", c.Name()), i*30/len(e.connectors))

		recs, err := c.Fetch(ctx, &source.Request{
			Query:    opts.Query,
			MaxItems: opts.MaxItems,
			Targets:  opts.Targets[c.Name()],
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Log.Errorf("数据源 [%s] 采集失败: %v", c.Name(), err)
			progress(fmt.Sprintf("%s failed: %v", c.Name(), err), (i+1)*30/len(e.connectors))
			continue
		}
		logger.Log.Infof("数据源 [%s] 采集到 %d 条记录", c.Name(), len(recs))
		records = append(records, recs...)
		progress(fmt.Sprintf("collected %d items from %s", len(recs), c.Name()), (i+1)*30/len(e.connectors))
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// RunOptions 运行选项
type RunOptions struct {
	Query            string
	Context          string
	Sources          map[string]bool
	IncludeRawData   bool
	Categorize       bool
	ProgressCallback ProgressFunc
}

// Run 对已采集的记录执行分析流程并组装 MessageMap
//
// 各轮调用的失败只会降级对应字段，不会中断流程。
func (e *Engine) Run(ctx context.Context, records []model.SourceRecord, opts RunOptions) (*model.MessageMap, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	progress := progressOf(opts.ProgressCallback)

	// 1. 文本语料
	progress("building corpus", 35)
	units := corpus.Build(records)
	logger.Log.Infof("共 %d 条记录，展开为 %d 段文本", len(records), len(units))

	// 2. 模式提取
	progress("analyzing customer language", 40)
	analysis := e.analyzer.AnalyzeBatch(ctx, corpus.Texts(units), opts.Context)
	logPass("analysis", analysis.Kind())

	// 3. 广告文案框架
	progress("generating ad framework", 65)
	framework := e.analyzer.GenerateAdFramework(ctx, analysis)
	logPass("ad_framework", framework.Kind())

	// 4. 认知阶段归类（可选）
	var categorization *model.Result[model.AwarenessBuckets]
	if opts.Categorize {
		progress("categorizing by awareness stage", 80)
		c := e.analyzer.CategorizeByAwareness(ctx, records)
		logPass("categorization", c.Kind())
		categorization = &c
	}

	// 5. 组装
	progress("assembling message map", 95)
	in := report.Input{
		Analysis:       analysis,
		Framework:      framework,
		Categorization: categorization,
		Metadata: model.Metadata{
			Query:   opts.Query,
			Context: opts.Context,
			Sources: opts.Sources,
		},
	}
	if opts.IncludeRawData {
		in.Records = records
	}
	mm := e.assembler.Assemble(in)

	progress("completed", 100)
	return mm, nil
}

func logPass(name string, kind model.Kind) {
	if kind == model.KindStructured {
		logger.Log.Infof("[%s] 解析成功", name)
		return
	}
	logger.Log.Warnf("[%s] 结果降级: %s", name, kind)
}

func progressOf(cb ProgressFunc) ProgressFunc {
	if cb == nil {
		return func(string, int) {}
	}
	return cb
}
