package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

func sampleMap() *model.MessageMap {
	var hooks model.OrderedMap[model.List[string]]
	hooks.Set("seasonal", model.List[string]{"Winter is coming for your skin"})
	hooks.Set("product_aware", model.List[string]{"Still using the old cream?"})
	hooks.Set("problem_aware", model.List[string]{"Tired of waking up to new breakouts?"})

	var structure model.OrderedMap[model.FlexString]
	structure.Set("problem", "p")
	structure.Set("agitate", "a")
	structure.Set("solution", "s")

	return &model.MessageMap{
		GeneratedAt: "2025-03-04T05:06:07Z",
		RunID:       "run-1",
		Metadata:    model.Metadata{Query: "acne cream", Sources: map[string]bool{"forum": true, "video": false}},
		ExecutiveSummary: model.ExecutiveSummary{
			TopPainPoint: "breakouts", DominantEmotion: "frustration", PrimaryDesire: "clear skin",
			TotalEmotionalPatterns: 1, TotalPainPoints: 1, TotalDesireTriggers: 1,
		},
		EmotionalIntelligence: model.List[model.EmotionalPattern]{{
			Emotion: "frustration", Frequency: "High", ExampleQuotes: model.List[string]{"I give up"},
		}},
		PainPoints: model.List[model.PainPoint]{{
			Description: "breakouts", Severity: "Critical", Quotes: model.List[string]{"nothing works & I'm <done>"},
		}},
		AwarenessStages: model.AwarenessStages{
			ProblemAware: model.StageEvidence{Indicators: model.List[string]{"why does"}, Quotes: model.List[string]{"why does this keep happening"}},
		},
		AdReadyHooks: hooks,
		BodyCopyFrameworks: model.List[model.BodyCopyFramework]{{
			FrameworkName: "Problem-Agitate-Solution", TargetAwareness: "problem_aware", Structure: structure, Example: "e",
		}},
		HeadlineFormulas:  model.List[string]{"How to X without Y"},
		CallToActions:     model.List[string]{"Try it free"},
		ObjectionHandlers: model.List[model.ObjectionHandler]{{Objection: "pricey", Response: "less than a coffee"}},
		KeyInsights:       model.List[string]{"people are tired"},
		RawDataSummary: &model.RawDataSummary{
			TotalItems: 3, Sources: map[string]int{"forum": 2, "retail": 1},
			DateRange: model.DateRange{Earliest: "2024-01-01", Latest: "2024-02-01"},
		},
		Passes: model.Passes{
			Analysis:    model.PassStatus{Status: "structured"},
			AdFramework: model.PassStatus{Status: "structured"},
		},
	}
}

func emptyMap() *model.MessageMap {
	return &model.MessageMap{
		GeneratedAt: "2025-03-04T05:06:07Z",
		Passes: model.Passes{
			Analysis:    model.PassStatus{Status: "raw", Raw: "not json"},
			AdFramework: model.PassStatus{Status: "error", Error: "timeout"},
		},
	}
}

var (
	mdHeader   = regexp.MustCompile(`(?m)^## (.+)$`)
	htmlHeader = regexp.MustCompile(`<h2>([^<]+)</h2>`)
)

func headers(re *regexp.Regexp, doc []byte) []string {
	var out []string
	for _, m := range re.FindAllSubmatch(doc, -1) {
		out = append(out, string(m[1]))
	}
	return out
}

// hostileMap 模型输出里夹带换行、标题和代码围栏
func hostileMap() *model.MessageMap {
	mm := sampleMap()
	mm.KeyInsights = model.List[string]{"first line\n## Injected From Model", "## Leading Heading"}
	mm.CallToActions = model.List[string]{"buy\r\n## CTA Heading"}
	mm.PainPoints[0].Description = "breakouts\n## From Description"
	mm.PainPoints[0].BeforeState = "before\n## From Before"
	mm.PainPoints[0].Quotes = model.List[string]{"quote\n## From Quote"}
	mm.ObjectionHandlers[0].Response = "cheap\n\n## From Response"
	mm.AdReadyHooks.Set("problem_aware", model.List[string]{"hook\n## From Hook"})
	mm.Passes.Analysis = model.PassStatus{Status: "raw", Raw: "```\n## Broken Out\n```"}
	mm.Passes.AdFramework = model.PassStatus{Status: "raw", Raw: "```json\n{\"hooks\": ````}\n```\n## After Fence"}
	return mm
}

func TestSectionHeadersMatchAcrossEncodings(t *testing.T) {
	for _, mm := range []*model.MessageMap{sampleMap(), emptyMap(), hostileMap()} {
		md := Markdown(mm)
		html, err := HTML(mm)
		require.NoError(t, err)

		assert.Equal(t, Sections, headers(mdHeader, md))
		assert.Equal(t, Sections, headers(htmlHeader, html))
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	for _, mm := range []*model.MessageMap{sampleMap(), hostileMap()} {
		before, err := json.Marshal(mm)
		require.NoError(t, err)

		for _, f := range []string{FormatJSON, FormatMarkdown, FormatHTML} {
			a, err := Render(mm, f)
			require.NoError(t, err)
			b, err := Render(mm, f)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(a, b), f)

			after, err := json.Marshal(mm)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after), f)
		}
	}
}

func TestMarkdownFlattensModelText(t *testing.T) {
	md := string(Markdown(hostileMap()))
	assert.Contains(t, md, "- first line ## Injected From Model\n")
	assert.Contains(t, md, "- \\## Leading Heading\n")
	assert.Contains(t, md, "- buy ## CTA Heading\n")
	assert.Contains(t, md, "### 1. breakouts ## From Description\n")
	assert.Contains(t, md, "> quote\n> \\## From Quote\n")
	assert.Contains(t, md, "**Response:** cheap  ## From Response\n")
	assert.Contains(t, md, "**Pattern analysis (raw):**\n\n    ```\n    ## Broken Out\n    ```\n")
	assert.Contains(t, md, "    ```json\n    {\"hooks\": ````}\n    ```\n    ## After Fence\n")
}

func TestJSONKeepsQuotesReadable(t *testing.T) {
	out, err := JSON(sampleMap())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `"nothing works & I'm <done>"`)
	assert.NotContains(t, s, `\u003c`)
	assert.True(t, strings.HasSuffix(s, "}\n"))

	mm, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "nothing works & I'm <done>", mm.PainPoints[0].Quotes[0])
}

func TestJSONIsLossless(t *testing.T) {
	first, err := JSON(sampleMap())
	require.NoError(t, err)

	mm, err := Decode(first)
	require.NoError(t, err)
	assert.Equal(t, []string{"seasonal", "product_aware", "problem_aware"}, mm.AdReadyHooks.Keys())

	second, err := JSON(mm)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	s := string(first)
	assert.Less(t, strings.Index(s, `"generated_at"`), strings.Index(s, `"executive_summary"`))
	assert.Less(t, strings.Index(s, `"problem"`), strings.Index(s, `"agitate"`))
}

func TestHTMLBadgesAndEscaping(t *testing.T) {
	html, err := HTML(sampleMap())
	require.NoError(t, err)
	s := string(html)

	assert.Contains(t, s, `<span class="badge badge-critical">Critical</span>`)
	assert.Contains(t, s, `<span class="badge badge-high">High</span>`)
	assert.Contains(t, s, "nothing works &amp; I&#39;m &lt;done&gt;")
	assert.Contains(t, s, "<h3>Frustration")
}

func TestHooksOrder(t *testing.T) {
	md := string(Markdown(sampleMap()))
	iProblem := strings.Index(md, "### Problem Aware\n- Tired")
	iProduct := strings.Index(md, "### Product Aware\n")
	iSeasonal := strings.Index(md, "### Seasonal\n")
	require.NotEqual(t, -1, iProblem)
	assert.Less(t, iProblem, iProduct)
	assert.Less(t, iProduct, iSeasonal)
	assert.Contains(t, md, "### Headline Formulas\n- How to X without Y")
}

func TestMarkdownContent(t *testing.T) {
	md := string(Markdown(sampleMap()))
	assert.True(t, strings.HasPrefix(md, "# Customer Language Message Map\n\nGenerated: 2025-03-04T05:06:07Z\nQuery: acne cream\nSources: forum\n"))
	assert.Contains(t, md, "### 1. breakouts\n**Severity:** Critical\n")
	assert.Contains(t, md, "> nothing works & I'm <done>")
	assert.Contains(t, md, "  - forum: 2\n  - retail: 1\n")
	assert.Contains(t, md, "- **Problem:** p\n- **Agitate:** a\n- **Solution:** s\n")
	assert.Contains(t, md, "### Problem Aware\n")
	assert.NotContains(t, md, "### Unaware")
}

func TestMarkdownShowsDegradedPasses(t *testing.T) {
	md := string(Markdown(emptyMap()))
	assert.Contains(t, md, "**Pattern analysis (raw):**\n\n    not json\n\n")
	assert.Contains(t, md, "**Ad framework (error):**\n\n    timeout\n\n")
	assert.Contains(t, md, "- **Top Pain Point:** \n")
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := Save(dir, sampleMap(), FormatAll)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, ext := range []string{".json", ".md", ".html"} {
		assert.Equal(t, filepath.Join(dir, "message_map_20250304_050607"+ext), paths[i])
		_, err := os.Stat(paths[i])
		assert.NoError(t, err)
	}

	paths, err = Save(dir, sampleMap(), FormatMarkdown)
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	_, err = Save(dir, sampleMap(), "pdf")
	assert.Error(t, err)
}

func TestSaveRejectsInvalidTimestamp(t *testing.T) {
	dir := t.TempDir()
	mm := sampleMap()
	mm.GeneratedAt = "yesterday"

	_, err := BaseName(mm)
	assert.Error(t, err)

	paths, err := Save(dir, mm, FormatAll)
	assert.Error(t, err)
	assert.Empty(t, paths)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
