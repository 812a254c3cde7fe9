package render

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// Markdown 渲染为 Markdown 文本
func Markdown(mm *model.MessageMap) []byte {
	v := newView(mm)
	w := &mdWriter{}

	w.line("# Customer Language Message Map")
	w.line("")
	w.linef("Generated: %s", orNA(v.GeneratedAt))
	if v.Query != "" {
		w.linef("Query: %s", v.Query)
	}
	if v.Context != "" {
		w.linef("Context: %s", v.Context)
	}
	if len(v.Sources) > 0 {
		w.linef("Sources: %s", strings.Join(v.Sources, ", "))
	}
	w.line("")

	for _, title := range v.Titles {
		w.linef("## %s", title)
		w.line("")
		mdSections[title](w, v)
	}
	return []byte(strings.TrimRight(w.b.String(), "\n") + "\n")
}

type mdWriter struct {
	b strings.Builder
}

func (w *mdWriter) line(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

// linef 字符串参数中的换行被压平，模型输出不能在单行字段里开出新的块
func (w *mdWriter) linef(format string, args ...any) {
	for i, a := range args {
		switch v := a.(type) {
		case string:
			args[i] = inline(v)
		case model.FlexString:
			args[i] = inline(v.String())
		}
	}
	w.line(fmt.Sprintf(format, args...))
}

// quote 多行内容逐行加引用前缀
func (w *mdWriter) quote(s string) {
	for _, l := range strings.Split(newlines.Replace(s), "\n") {
		w.line(strings.TrimRight("> "+escapeLead(l), " "))
	}
}

func (w *mdWriter) bullets(items []string) {
	for _, it := range items {
		w.linef("- %s", escapeLead(inline(it)))
	}
}

// codeBlock 缩进 4 格的代码块，原文里的反引号围栏不会提前结束代码块
func (w *mdWriter) codeBlock(s string) {
	for _, l := range strings.Split(newlines.Replace(s), "\n") {
		w.line(strings.TrimRight("    "+l, " "))
	}
}

var (
	newlines  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	flattener = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

func inline(s string) string {
	return flattener.Replace(s)
}

// escapeLead 行首的 # 会被当成标题，转义掉
func escapeLead(s string) string {
	trimmed := strings.TrimLeft(s, " ")
	if strings.HasPrefix(trimmed, "#") {
		return s[:len(s)-len(trimmed)] + `\` + trimmed
	}
	return s
}

var mdSections = map[string]func(*mdWriter, view){
	SectionSummary:    mdSummary,
	SectionInsights:   mdInsights,
	SectionPainPoints: mdPainPoints,
	SectionEmotions:   mdEmotions,
	SectionAwareness:  mdAwareness,
	SectionHooks:      mdHooks,
	SectionFrameworks: mdFrameworks,
	SectionCTAs:       mdCTAs,
	SectionObjections: mdObjections,
}

func mdSummary(w *mdWriter, v view) {
	s := v.Summary
	w.linef("- **Top Pain Point:** %s", s.TopPainPoint)
	w.linef("- **Dominant Emotion:** %s", s.DominantEmotion)
	w.linef("- **Primary Desire:** %s", s.PrimaryDesire)
	w.linef("- **Total Patterns Identified:** %d emotional patterns, %d pain points, %d desire triggers",
		s.TotalEmotionalPatterns, s.TotalPainPoints, s.TotalDesireTriggers)
	if r := v.RawSummary; r != nil {
		w.linef("- **Items Analyzed:** %d", r.TotalItems)
		for _, p := range v.RawSources {
			w.linef("  - %s: %s", p.Key, p.Value)
		}
		w.linef("- **Date Range:** %s to %s", r.DateRange.Earliest, r.DateRange.Latest)
	}
	w.line("")
	for _, p := range v.Passes {
		w.linef("**%s (%s):**", p.Name, p.Status)
		w.line("")
		w.codeBlock(p.Detail)
		w.line("")
	}
}

func mdInsights(w *mdWriter, v view) {
	w.bullets(v.KeyInsights)
	w.line("")
}

func mdPainPoints(w *mdWriter, v view) {
	for i, p := range v.PainPoints {
		w.linef("### %d. %s", i+1, orNA(p.Description))
		w.linef("**Severity:** %s", orNA(p.Severity.String()))
		if p.FrequencyMentioned != "" {
			w.linef("**Frequency Mentioned:** %s", p.FrequencyMentioned)
		}
		if p.BeforeState != "" {
			w.linef("**Before:** %s", p.BeforeState)
		}
		if p.DesiredOutcome != "" {
			w.linef("**Desired Outcome:** %s", p.DesiredOutcome)
		}
		w.line("")
		w.line("**Customer Quotes:**")
		for _, q := range p.Quotes {
			w.quote(q)
		}
		w.line("")
	}
}

func mdEmotions(w *mdWriter, v view) {
	for _, e := range v.Emotions {
		w.linef("### %s", titleCase(orNA(e.Emotion)))
		w.linef("**Frequency:** %s", orNA(e.Frequency.String()))
		w.linef("**Advertising Angle:** %s", orNA(e.AdvertisingAngle))
		if len(e.TriggerWords) > 0 {
			w.linef("**Trigger Words:** %s", strings.Join(e.TriggerWords, ", "))
		}
		w.line("")
		w.line("**Example Quotes:**")
		for _, q := range e.ExampleQuotes {
			w.quote(q)
		}
		w.line("")
	}
}

func mdAwareness(w *mdWriter, v view) {
	for _, st := range v.Stages {
		w.linef("### %s", st.Title)
		w.line("")
		w.line("**Key Phrases:**")
		w.bullets(st.Indicators)
		w.line("")
		w.line("**Example Quotes:**")
		for _, q := range st.Quotes {
			w.quote(q)
		}
		if len(st.Records) > 0 {
			w.line("")
			w.linef("**Categorized Records (%d):**", len(st.Records))
			for _, rec := range st.Records {
				w.linef("- [%s] %s", orNA(rec.Source), rec.Text)
			}
		}
		w.line("")
	}
}

func mdHooks(w *mdWriter, v view) {
	for _, g := range v.Hooks {
		w.linef("### %s", g.Title)
		w.bullets(g.Hooks)
		w.line("")
	}
	if len(v.Headlines) > 0 {
		w.line("### Headline Formulas")
		w.bullets(v.Headlines)
		w.line("")
	}
}

func mdFrameworks(w *mdWriter, v view) {
	for _, fw := range v.Frameworks {
		w.linef("### %s", orNA(fw.Name))
		w.linef("**Target Awareness:** %s", orNA(fw.Target))
		if len(fw.Structure) > 0 {
			w.line("")
			for _, p := range fw.Structure {
				w.linef("- **%s:** %s", p.Key, p.Value)
			}
		}
		w.line("")
		w.line("**Example:**")
		w.quote(orNA(fw.Example))
		w.line("")
	}
}

func mdCTAs(w *mdWriter, v view) {
	w.bullets(v.CTAs)
	w.line("")
}

func mdObjections(w *mdWriter, v view) {
	for _, o := range v.Objections {
		w.linef("**Objection:** %s", orNA(o.Objection))
		w.linef("**Response:** %s", orNA(o.Response))
		w.line("")
	}
}
