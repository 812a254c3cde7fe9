package model

// MessageMap 一次运行的完整报告，组装完成后不再修改
type MessageMap struct {
	GeneratedAt string   `json:"generated_at"`
	RunID       string   `json:"run_id"`
	Metadata    Metadata `json:"metadata"`

	ExecutiveSummary      ExecutiveSummary         `json:"executive_summary"`
	EmotionalIntelligence List[EmotionalPattern]   `json:"emotional_intelligence"`
	PainPoints            List[PainPoint]          `json:"pain_points"`
	DesireTriggers        List[DesireTrigger]      `json:"desire_triggers"`
	AwarenessStages       AwarenessStages          `json:"awareness_stages"`
	LanguagePatterns      LanguagePatterns         `json:"language_patterns"`
	AdReadyHooks          OrderedMap[List[string]] `json:"ad_ready_hooks"`
	BodyCopyFrameworks    List[BodyCopyFramework]  `json:"body_copy_frameworks"`
	HeadlineFormulas      List[string]             `json:"headline_formulas"`
	CallToActions         List[string]             `json:"call_to_actions"`
	ObjectionHandlers     List[ObjectionHandler]   `json:"objection_handlers"`
	KeyInsights           List[string]             `json:"key_insights"`

	RawDataSummary   *RawDataSummary   `json:"raw_data_summary"`
	AwarenessBuckets *AwarenessBuckets `json:"awareness_buckets,omitempty"`
	Passes           Passes            `json:"passes"`
}

// Metadata 调用方提供的运行参数
type Metadata struct {
	Query   string          `json:"query"`
	Context string          `json:"context"`
	Sources map[string]bool `json:"sources"`
}

// ExecutiveSummary 执行摘要
type ExecutiveSummary struct {
	TopPainPoint           string `json:"top_pain_point"`
	DominantEmotion        string `json:"dominant_emotion"`
	PrimaryDesire          string `json:"primary_desire"`
	TotalEmotionalPatterns int    `json:"total_emotional_patterns"`
	TotalPainPoints        int    `json:"total_pain_points"`
	TotalDesireTriggers    int    `json:"total_desire_triggers"`
}

// RawDataSummary 原始数据统计
type RawDataSummary struct {
	TotalItems int            `json:"total_items"`
	Sources    map[string]int `json:"sources"`
	DateRange  DateRange      `json:"date_range"`
}

// DateRange 时间范围
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// Passes 各次模型调用的状态
type Passes struct {
	Analysis       PassStatus  `json:"analysis"`
	AdFramework    PassStatus  `json:"ad_framework"`
	Categorization *PassStatus `json:"categorization,omitempty"`
}

// PassStatus 单次调用的状态及降级时保留的内容
type PassStatus struct {
	Status string `json:"status"`
	Raw    string `json:"raw,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Degraded 是否未得到结构化结果
func (p PassStatus) Degraded() bool {
	return p.Status != KindStructured.String()
}
