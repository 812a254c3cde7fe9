package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Summary(&model.MessageMap{
		ExecutiveSummary: model.ExecutiveSummary{
			TopPainPoint:    "back pain",
			DominantEmotion: "frustration",
			PrimaryDesire:   "N/A",
			TotalPainPoints: 3,
		},
		KeyInsights: model.List[string]{"i1", "i2", "i3", "i4", "i5", "i6"},
		Passes: model.Passes{
			Analysis:    model.PassStatus{Status: "structured"},
			AdFramework: model.PassStatus{Status: "raw", Raw: "text"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Top Pain Point")
	assert.Contains(t, out, "back pain")
	assert.Contains(t, out, "frustration")
	assert.Contains(t, out, "5. i5")
	assert.NotContains(t, out, "i6")
	assert.Contains(t, out, "ad framework pass returned raw output")
	assert.NotContains(t, out, "analysis pass")
}

func TestProgressAndFiles(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Progress("building corpus", 35)
	p.Files([]string{"out/message_map_1.json"})

	assert.Contains(t, buf.String(), "[ 35%] building corpus")
	assert.Contains(t, buf.String(), "  • out/message_map_1.json")
}
