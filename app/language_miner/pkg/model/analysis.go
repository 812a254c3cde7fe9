package model

// Stage 认知阶段（Eugene Schwartz 的 5 个阶段）
type Stage struct {
	Key   string
	Title string
}

// 5 个固定的认知阶段键
const (
	StageUnaware       = "unaware"
	StageProblemAware  = "problem_aware"
	StageSolutionAware = "solution_aware"
	StageProductAware  = "product_aware"
	StageMostAware     = "most_aware"
)

// AwarenessStageOrder 阶段的固定展示顺序
var AwarenessStageOrder = []Stage{
	{Key: StageUnaware, Title: "Unaware"},
	{Key: StageProblemAware, Title: "Problem Aware"},
	{Key: StageSolutionAware, Title: "Solution Aware"},
	{Key: StageProductAware, Title: "Product Aware"},
	{Key: StageMostAware, Title: "Most Aware"},
}

// IsStage 判断是否为已知阶段键
func IsStage(key string) bool {
	for _, s := range AwarenessStageOrder {
		if s.Key == key {
			return true
		}
	}
	return false
}

// Analysis 模式提取结果
type Analysis struct {
	EmotionalPatterns List[EmotionalPattern] `json:"emotional_patterns"`
	PainPoints        List[PainPoint]        `json:"pain_points"`
	DesireTriggers    List[DesireTrigger]    `json:"desire_triggers"`
	AwarenessStages   AwarenessStages        `json:"awareness_stages"`
	LanguagePatterns  LanguagePatterns       `json:"language_patterns"`
	KeyInsights       List[string]           `json:"key_insights"`
}

// EmotionalPattern 情绪模式
type EmotionalPattern struct {
	Emotion          string       `json:"emotion"`
	Frequency        FlexString   `json:"frequency"` // high / medium / low
	ExampleQuotes    List[string] `json:"example_quotes"`
	TriggerWords     List[string] `json:"trigger_words"`
	AdvertisingAngle string       `json:"advertising_angle"`
}

// PainPoint 痛点
type PainPoint struct {
	Description        string       `json:"pain_point"`
	Severity           FlexString   `json:"severity"` // critical / major / minor
	FrequencyMentioned FlexString   `json:"frequency_mentioned"`
	Quotes             List[string] `json:"customer_quotes"`
	BeforeState        string       `json:"before_state"`
	DesiredOutcome     string       `json:"desired_outcome"`
}

// DesireTrigger 欲望触发点
type DesireTrigger struct {
	Desire               string       `json:"desire"`
	Intensity            FlexString   `json:"intensity"`
	LanguagePatterns     List[string] `json:"language_patterns"`
	Quotes               List[string] `json:"example_quotes"`
	AspirationalIdentity string       `json:"aspirational_identity"`
}

// StageEvidence 某一认知阶段的语言证据
type StageEvidence struct {
	Indicators List[string] `json:"indicators"`
	Quotes     List[string] `json:"quotes"`
}

// Empty 是否没有任何证据
func (e StageEvidence) Empty() bool {
	return len(e.Indicators) == 0 && len(e.Quotes) == 0
}

// AwarenessStages 固定 5 键的阶段映射
type AwarenessStages struct {
	Unaware       StageEvidence `json:"unaware"`
	ProblemAware  StageEvidence `json:"problem_aware"`
	SolutionAware StageEvidence `json:"solution_aware"`
	ProductAware  StageEvidence `json:"product_aware"`
	MostAware     StageEvidence `json:"most_aware"`
}

// Get 按阶段键读取
func (a AwarenessStages) Get(key string) StageEvidence {
	switch key {
	case StageUnaware:
		return a.Unaware
	case StageProblemAware:
		return a.ProblemAware
	case StageSolutionAware:
		return a.SolutionAware
	case StageProductAware:
		return a.ProductAware
	case StageMostAware:
		return a.MostAware
	}
	return StageEvidence{}
}

// LanguagePatterns 语言习惯
type LanguagePatterns struct {
	Phrases         List[string] `json:"commonly_used_phrases"`
	Metaphors       List[string] `json:"metaphors_analogies"`
	Objections      List[string] `json:"objections"`
	Questions       List[string] `json:"questions_asked"`
	VocabularyLevel FlexString   `json:"vocabulary_level"`
	Tone            FlexString   `json:"tone"`
}
