// Package console 命令行输出：进度、结果汇总表
package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

const topInsights = 5

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ab47bc")).Padding(0, 1)
	metricStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#26c6da")).Padding(0, 1)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Padding(0, 1)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
	progressText = "[%3d%%] %s"
)

// Printer 把引擎进度和最终结果输出到终端
type Printer struct {
	w io.Writer
}

// NewPrinter 创建 Printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Title 粗体标题
func (p *Printer) Title(s string) {
	fmt.Fprintln(p.w, titleStyle.Render(s))
}

// Infof 普通信息
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Success ✓ 开头的成功信息
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, okStyle.Render("✓")+" "+msg)
}

// Warn 警告信息
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, warnStyle.Render("Warning:")+" "+msg)
}

// Error 错误信息
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, errStyle.Render("Error:")+" "+msg)
}

// Progress 可直接作为 engine 的 ProgressCallback
func (p *Printer) Progress(status string, progress int) {
	fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(progressText, progress, status)))
}

// Files 已保存的文件列表
func (p *Printer) Files(paths []string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "Files saved:")
	for _, path := range paths {
		fmt.Fprintf(p.w, "  • %s\n", path)
	}
}

// Summary 关键指标表格和前几条洞察
func (p *Printer) Summary(mm *model.MessageMap) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, titleStyle.Render("Key Insights:"))
	fmt.Fprintln(p.w, SummaryTable(mm.ExecutiveSummary))

	for _, pass := range degradedPasses(mm.Passes) {
		p.Warn(pass)
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, titleStyle.Render("Top Insights:"))
	for i, insight := range mm.KeyInsights {
		if i >= topInsights {
			break
		}
		fmt.Fprintf(p.w, "  %d. %s\n", i+1, insight)
	}
}

// SummaryTable 执行摘要表格
func SummaryTable(s model.ExecutiveSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Metric", "Value").
		Row("Top Pain Point", s.TopPainPoint).
		Row("Dominant Emotion", s.DominantEmotion).
		Row("Primary Desire", s.PrimaryDesire).
		Row("Emotional Patterns", strconv.Itoa(s.TotalEmotionalPatterns)).
		Row("Pain Points", strconv.Itoa(s.TotalPainPoints)).
		Row("Desire Triggers", strconv.Itoa(s.TotalDesireTriggers)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return metricStyle
			default:
				return valueStyle
			}
		})
	return t.String()
}

func degradedPasses(p model.Passes) []string {
	var out []string
	add := func(name string, s *model.PassStatus) {
		if s != nil && s.Degraded() {
			out = append(out, fmt.Sprintf("%s pass returned %s output", name, s.Status))
		}
	}
	add("analysis", &p.Analysis)
	add("ad framework", &p.AdFramework)
	add("categorization", p.Categorization)
	return out
}
