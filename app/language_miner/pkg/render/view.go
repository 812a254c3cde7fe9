package render

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// 报告各章节标题，所有文本格式按此顺序输出
const (
	SectionSummary    = "Executive Summary"
	SectionInsights   = "Key Insights"
	SectionPainPoints = "Pain Points"
	SectionEmotions   = "Emotional Patterns"
	SectionAwareness  = "Customer Awareness Stages"
	SectionHooks      = "Ad-Ready Hooks"
	SectionFrameworks = "Body Copy Frameworks"
	SectionCTAs       = "Call to Action Suggestions"
	SectionObjections = "Objection Handlers"
)

// Sections 章节顺序
var Sections = []string{
	SectionSummary,
	SectionInsights,
	SectionPainPoints,
	SectionEmotions,
	SectionAwareness,
	SectionHooks,
	SectionFrameworks,
	SectionCTAs,
	SectionObjections,
}

type pair struct {
	Key   string
	Value string
}

type passNote struct {
	Name   string
	Status string
	Detail string
}

type stageView struct {
	Title      string
	Indicators []string
	Quotes     []string
	Records    []model.SourceRecord
}

type hookGroup struct {
	Title string
	Hooks []string
}

type frameworkView struct {
	Name      string
	Target    string
	Structure []pair
	Example   string
}

// view Markdown 与 HTML 共用的展示数据，由 MessageMap 只读派生
type view struct {
	Titles      []string
	GeneratedAt string
	RunID       string
	Query       string
	Context     string
	Sources     []string

	Summary    model.ExecutiveSummary
	RawSummary *model.RawDataSummary
	RawSources []pair
	Passes     []passNote

	KeyInsights []string
	PainPoints  []model.PainPoint
	Emotions    []model.EmotionalPattern
	Stages      []stageView
	Hooks       []hookGroup
	Headlines   []string
	Frameworks  []frameworkView
	CTAs        []string
	Objections  []model.ObjectionHandler
}

func newView(mm *model.MessageMap) view {
	v := view{
		Titles:      Sections,
		GeneratedAt: mm.GeneratedAt,
		RunID:       mm.RunID,
		Query:       mm.Metadata.Query,
		Context:     mm.Metadata.Context,
		Summary:     mm.ExecutiveSummary,
		RawSummary:  mm.RawDataSummary,
		KeyInsights: mm.KeyInsights,
		PainPoints:  mm.PainPoints,
		Emotions:    mm.EmotionalIntelligence,
		Headlines:   mm.HeadlineFormulas,
		CTAs:        mm.CallToActions,
		Objections:  mm.ObjectionHandlers,
	}

	for name, on := range mm.Metadata.Sources {
		if on {
			v.Sources = append(v.Sources, name)
		}
	}
	sort.Strings(v.Sources)

	if mm.RawDataSummary != nil {
		for name, n := range mm.RawDataSummary.Sources {
			v.RawSources = append(v.RawSources, pair{Key: name, Value: strconv.Itoa(n)})
		}
		sort.Slice(v.RawSources, func(i, j int) bool { return v.RawSources[i].Key < v.RawSources[j].Key })
	}

	v.Passes = degradedPasses(mm.Passes)
	v.Stages = stageViews(mm)
	v.Hooks = hookGroups(mm.AdReadyHooks)
	for _, fw := range mm.BodyCopyFrameworks {
		fv := frameworkView{Name: fw.FrameworkName, Target: fw.TargetAwareness, Example: fw.Example}
		for _, k := range fw.Structure.Keys() {
			val, _ := fw.Structure.Get(k)
			fv.Structure = append(fv.Structure, pair{Key: titleCase(k), Value: val.String()})
		}
		v.Frameworks = append(v.Frameworks, fv)
	}
	return v
}

func degradedPasses(p model.Passes) []passNote {
	var notes []passNote
	add := func(name string, s model.PassStatus) {
		if s.Status == "" || !s.Degraded() {
			return
		}
		detail := s.Raw
		if s.Status == model.KindError.String() {
			detail = s.Error
		}
		notes = append(notes, passNote{Name: name, Status: s.Status, Detail: detail})
	}
	add("Pattern analysis", p.Analysis)
	add("Ad framework", p.AdFramework)
	if p.Categorization != nil {
		add("Awareness categorization", *p.Categorization)
	}
	return notes
}

// stageViews 只保留有内容的阶段
func stageViews(mm *model.MessageMap) []stageView {
	var out []stageView
	for _, st := range model.AwarenessStageOrder {
		ev := mm.AwarenessStages.Get(st.Key)
		sv := stageView{Title: st.Title, Indicators: ev.Indicators, Quotes: ev.Quotes}
		if mm.AwarenessBuckets != nil {
			sv.Records = mm.AwarenessBuckets.Get(st.Key)
		}
		if ev.Empty() && len(sv.Records) == 0 {
			continue
		}
		out = append(out, sv)
	}
	return out
}

// hookGroups 已知阶段按固定顺序在前，其余键保持模型输出顺序
func hookGroups(hooks model.OrderedMap[model.List[string]]) []hookGroup {
	var out []hookGroup
	seen := make(map[string]bool)
	for _, st := range model.AwarenessStageOrder {
		if list, ok := hooks.Get(st.Key); ok {
			out = append(out, hookGroup{Title: st.Title, Hooks: list})
			seen[st.Key] = true
		}
	}
	for _, k := range hooks.Keys() {
		if seen[k] {
			continue
		}
		list, _ := hooks.Get(k)
		out = append(out, hookGroup{Title: titleCase(strings.ReplaceAll(k, "_", " ")), Hooks: list})
	}
	return out
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func badgeClass(level model.FlexString) string {
	return "badge badge-" + strings.ToLower(level.String())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
