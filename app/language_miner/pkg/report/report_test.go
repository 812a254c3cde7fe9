package report

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestAssembler() *Assembler {
	return NewAssembler(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "run-1" }),
	)
}

func TestSummarizeFirstOrNA(t *testing.T) {
	a := model.Analysis{
		PainPoints:     model.List[model.PainPoint]{{Description: "A"}, {Description: "B"}},
		DesireTriggers: model.List[model.DesireTrigger]{{Desire: "X"}},
	}
	s := Summarize(a)
	assert.Equal(t, "A", s.TopPainPoint)
	assert.Equal(t, "N/A", s.DominantEmotion)
	assert.Equal(t, "X", s.PrimaryDesire)
	assert.Equal(t, 2, s.TotalPainPoints)
	assert.Equal(t, 0, s.TotalEmotionalPatterns)
	assert.Equal(t, 1, s.TotalDesireTriggers)
}

func TestSummarizeRecordsSources(t *testing.T) {
	recs := []model.SourceRecord{
		{Source: model.SourceForum},
		{Source: model.SourceForum},
		{Source: model.SourceRetail},
	}
	s := SummarizeRecords(recs)
	require.NotNil(t, s)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, map[string]int{"forum": 2, "retail": 1}, s.Sources)
	assert.Equal(t, model.DateRange{Earliest: "N/A", Latest: "N/A"}, s.DateRange)

	s = SummarizeRecords([]model.SourceRecord{{}})
	assert.Equal(t, map[string]int{"unknown": 1}, s.Sources)

	assert.Nil(t, SummarizeRecords(nil))
}

func TestDateRangeOf(t *testing.T) {
	recs := []model.SourceRecord{
		{CreatedUTC: "2024-02-01T00:00:00Z", Date: "1999-01-01"},
		{PublishedAt: "2024-01-15T10:00:00Z"},
		{},
		{Date: "2024-03-01"},
	}
	dr := DateRangeOf(recs)
	assert.Equal(t, "2024-01-15T10:00:00Z", dr.Earliest)
	assert.Equal(t, "2024-03-01", dr.Latest)
}

// 字典序只在 ISO-8601 时间上与真实时间顺序一致
func TestDateRangeLexicographicVsParsed(t *testing.T) {
	parse := func(layout, v string) time.Time {
		ts, err := time.Parse(layout, v)
		require.NoError(t, err)
		return ts
	}

	iso := []string{"2023-12-31", "2024-01-02", "2023-06-15"}
	recs := make([]model.SourceRecord, len(iso))
	for i, d := range iso {
		recs[i] = model.SourceRecord{Date: d}
	}
	dr := DateRangeOf(recs)
	for _, d := range iso {
		assert.False(t, parse(time.DateOnly, d).Before(parse(time.DateOnly, dr.Earliest)))
		assert.False(t, parse(time.DateOnly, d).After(parse(time.DateOnly, dr.Latest)))
	}

	const human = "January 2, 2006"
	mixed := []model.SourceRecord{{Date: "March 1, 2024"}, {Date: "December 5, 2023"}}
	dr = DateRangeOf(mixed)
	assert.Equal(t, "December 5, 2023", dr.Earliest)
	assert.True(t, parse(human, dr.Earliest).Before(parse(human, dr.Latest)))

	wrong := []model.SourceRecord{{Date: "April 1, 2024"}, {Date: "March 1, 2023"}}
	dr = DateRangeOf(wrong)
	assert.Equal(t, "April 1, 2024", dr.Earliest)
	assert.True(t, parse(human, dr.Earliest).After(parse(human, dr.Latest)))
}

func TestAssembleStructured(t *testing.T) {
	var hooks model.OrderedMap[model.List[string]]
	hooks.Set("problem_aware", model.List[string]{"h1"})

	in := Input{
		Analysis: model.Structured(model.Analysis{
			PainPoints:  model.List[model.PainPoint]{{Description: "A"}},
			KeyInsights: model.List[string]{"k"},
		}),
		Framework: model.Structured(model.AdFramework{
			Hooks:                   hooks,
			CallToActionSuggestions: model.List[string]{"buy"},
		}),
		Records:  []model.SourceRecord{{Source: model.SourceVideo, PublishedAt: "2024-01-01T00:00:00Z"}},
		Metadata: model.Metadata{Query: "acne", Sources: map[string]bool{"video": true}},
	}
	mm := newTestAssembler().Assemble(in)

	assert.Equal(t, "2025-03-04T05:06:07Z", mm.GeneratedAt)
	assert.Equal(t, "run-1", mm.RunID)
	assert.Equal(t, "A", mm.ExecutiveSummary.TopPainPoint)
	assert.Equal(t, []string{"problem_aware"}, mm.AdReadyHooks.Keys())
	assert.Equal(t, model.List[string]{"buy"}, mm.CallToActions)
	assert.Equal(t, 1, mm.RawDataSummary.TotalItems)
	assert.Equal(t, "structured", mm.Passes.Analysis.Status)
	assert.Nil(t, mm.Passes.Categorization)
	assert.Nil(t, mm.AwarenessBuckets)
}

func TestAssembleDegraded(t *testing.T) {
	cat := model.Failed[model.AwarenessBuckets](errors.New("boom"))
	mm := newTestAssembler().Assemble(Input{
		Analysis:       model.Raw[model.Analysis]("not json"),
		Framework:      model.Failed[model.AdFramework](errors.New("timeout")),
		Categorization: &cat,
	})

	assert.Equal(t, "N/A", mm.ExecutiveSummary.TopPainPoint)
	assert.Equal(t, model.PassStatus{Status: "raw", Raw: "not json"}, mm.Passes.Analysis)
	assert.Equal(t, model.PassStatus{Status: "error", Error: "timeout"}, mm.Passes.AdFramework)
	require.NotNil(t, mm.Passes.Categorization)
	assert.Equal(t, "error", mm.Passes.Categorization.Status)
	assert.Nil(t, mm.AwarenessBuckets)
	assert.Nil(t, mm.RawDataSummary)

	b, err := json.Marshal(mm)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(b, &generic))
	assert.Equal(t, []any{}, generic["pain_points"])
	assert.Equal(t, map[string]any{}, generic["ad_ready_hooks"])
	assert.Nil(t, generic["raw_data_summary"])
	assert.Equal(t, map[string]any{}, generic["metadata"].(map[string]any)["sources"])
}

func TestAssembleWithBuckets(t *testing.T) {
	var buckets model.AwarenessBuckets
	buckets.Add(model.StageUnaware, model.SourceRecord{Text: "hm"})
	cat := model.Structured(buckets)

	mm := newTestAssembler().Assemble(Input{
		Analysis:       model.Structured(model.Analysis{}),
		Framework:      model.Structured(model.AdFramework{}),
		Categorization: &cat,
	})
	require.NotNil(t, mm.AwarenessBuckets)
	assert.Len(t, mm.AwarenessBuckets.Unaware, 1)
}

func TestDefaultAssemblerUsesUUID(t *testing.T) {
	mm := NewAssembler().Assemble(Input{})
	assert.Len(t, mm.RunID, 36)
	_, err := time.Parse(time.RFC3339, mm.GeneratedAt)
	assert.NoError(t, err)
}
