package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/console"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/engine"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/render"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source/factory"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/store"
)

// options 命令行参数
type options struct {
	reddit     string
	amazon     bool
	youtube    bool
	context    string
	format     string
	configPath string
	categorize bool
	outputDir  string
}

// enabled 开启的数据源
func (o *options) enabled() factory.Enabled {
	return factory.Enabled{
		Reddit:  strings.TrimSpace(o.reddit) != "",
		Amazon:  o.amazon,
		YouTube: o.youtube,
	}
}

// subreddits 逗号分隔的 subreddit 列表
func (o *options) subreddits() []string {
	var subs []string
	for _, s := range strings.Split(o.reddit, ",") {
		if s = strings.TrimSpace(s); s != "" {
			subs = append(subs, s)
		}
	}
	return subs
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "language_miner <query>",
		Short: "Extract and analyze customer language for advertising",
		Long: `Collects customer-authored text from forums, retail reviews and video comments,
asks an LLM to mine emotions, pain points, desires and awareness stages,
and writes an ad-ready message map as JSON, Markdown or HTML.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), console.NewPrinter(cmd.OutOrStdout()), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.reddit, "reddit", "", `comma-separated subreddit names (e.g. "Fitness,running")`)
	f.BoolVar(&opts.amazon, "amazon", false, "enable Amazon reviews scraping")
	f.BoolVar(&opts.youtube, "youtube", false, "enable YouTube comments scraping")
	f.StringVar(&opts.context, "context", "", "additional context about the product or category")
	f.StringVar(&opts.format, "format", "", "output format: json, markdown, html or all (default from config)")
	f.StringVar(&opts.configPath, "config", "configs/config.yaml", "path to config file")
	f.BoolVar(&opts.categorize, "categorize", false, "also sort collected items by awareness stage")
	f.StringVar(&opts.outputDir, "output", "", "output directory (default from config)")
	return cmd
}

func run(ctx context.Context, p *console.Printer, query string, opts *options) error {
	enabled := opts.enabled()
	if !enabled.Any() {
		return errors.New("at least one data source must be specified (--reddit, --amazon, or --youtube)")
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format := cfg.Output.Format
	if opts.format != "" {
		format = opts.format
	}
	if _, err := render.ExpandFormats(format); err != nil {
		return err
	}
	outputDir := cfg.Output.Directory
	if opts.outputDir != "" {
		outputDir = opts.outputDir
	}

	p.Title("Customer Language Mining System")
	p.Infof("Query: %s", query)
	p.Infof("Sources: Reddit: %t, Amazon: %t, YouTube: %t", enabled.Reddit, enabled.Amazon, enabled.YouTube)

	// 2. 初始化引擎
	eng, err := engine.NewEngine(ctx, cfg, enabled)
	if err != nil {
		return err
	}

	// 3. 采集
	records, err := eng.Collect(ctx, engine.CollectOptions{
		Query:            query,
		MaxItems:         cfg.Scraping.MaxItemsPerSource,
		Targets:          map[string][]string{source.NameReddit: opts.subreddits()},
		ProgressCallback: p.Progress,
	})
	if err != nil {
		if errors.Is(err, engine.ErrNoRecords) || errors.Is(err, engine.ErrNoSources) {
			return fmt.Errorf("no data was scraped, please check your inputs and API keys: %w", err)
		}
		return err
	}
	p.Success(fmt.Sprintf("Total items scraped: %d", len(records)))

	// 4. 分析
	mm, err := eng.Run(ctx, records, engine.RunOptions{
		Query:            query,
		Context:          opts.context,
		Sources:          enabled.Sources(),
		IncludeRawData:   cfg.Output.IncludeRawData,
		Categorize:       opts.categorize || cfg.Analysis.Categorize,
		ProgressCallback: p.Progress,
	})
	if err != nil {
		return err
	}

	// 5. 输出
	paths, err := store.NewFileStore(outputDir).Save(mm, format)
	if err != nil {
		return fmt.Errorf("保存报告失败: %w", err)
	}
	p.Success("Message Map Generated Successfully!")
	p.Files(paths)
	p.Summary(mm)
	logger.Log.Infof("报告已生成: %s", strings.Join(paths, ", "))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		console.NewPrinter(os.Stderr).Error(err.Error())
		stop()
		os.Exit(1)
	}
}
