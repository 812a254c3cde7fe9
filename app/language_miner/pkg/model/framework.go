package model

// AdFramework 广告文案框架
type AdFramework struct {
	Hooks                   OrderedMap[List[string]] `json:"hooks"` // 认知阶段 -> 钩子文案
	BodyCopyFrameworks      List[BodyCopyFramework]  `json:"body_copy_frameworks"`
	HeadlineFormulas        List[string]             `json:"headline_formulas"`
	CallToActionSuggestions List[string]             `json:"call_to_action_suggestions"`
	ObjectionHandlers       List[ObjectionHandler]   `json:"objection_handlers"`
}

// BodyCopyFramework 正文框架，如 Problem-Agitate-Solution
type BodyCopyFramework struct {
	FrameworkName   string                 `json:"framework_name"`
	TargetAwareness string                 `json:"target_awareness"`
	Structure       OrderedMap[FlexString] `json:"structure"`
	Example         string                 `json:"example"`
}

// ObjectionHandler 异议处理
type ObjectionHandler struct {
	Objection string `json:"objection"`
	Response  string `json:"response"`
}

// AwarenessBuckets 按认知阶段归类后的原始记录
type AwarenessBuckets struct {
	Unaware       List[SourceRecord] `json:"unaware"`
	ProblemAware  List[SourceRecord] `json:"problem_aware"`
	SolutionAware List[SourceRecord] `json:"solution_aware"`
	ProductAware  List[SourceRecord] `json:"product_aware"`
	MostAware     List[SourceRecord] `json:"most_aware"`
}

// Add 把记录放入对应阶段，阶段未知时返回 false
func (b *AwarenessBuckets) Add(stage string, rec SourceRecord) bool {
	switch stage {
	case StageUnaware:
		b.Unaware = append(b.Unaware, rec)
	case StageProblemAware:
		b.ProblemAware = append(b.ProblemAware, rec)
	case StageSolutionAware:
		b.SolutionAware = append(b.SolutionAware, rec)
	case StageProductAware:
		b.ProductAware = append(b.ProductAware, rec)
	case StageMostAware:
		b.MostAware = append(b.MostAware, rec)
	default:
		return false
	}
	return true
}

// Get 按阶段键读取
func (b AwarenessBuckets) Get(stage string) List[SourceRecord] {
	switch stage {
	case StageUnaware:
		return b.Unaware
	case StageProblemAware:
		return b.ProblemAware
	case StageSolutionAware:
		return b.SolutionAware
	case StageProductAware:
		return b.ProductAware
	case StageMostAware:
		return b.MostAware
	}
	return nil
}

// Total 已归类记录总数
func (b AwarenessBuckets) Total() int {
	n := 0
	for _, s := range AwarenessStageOrder {
		n += len(b.Get(s.Key))
	}
	return n
}
