package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MaxBatchUnits 模式提取一次最多送入的文本条数，超出部分直接丢弃
	MaxBatchUnits = 100
	// MaxCategorizeItems 认知阶段归类一次最多送入的记录数
	MaxCategorizeItems = 50

	unitSeparator = "\n\n---\n\n"
)

const analysisPromptTpl = `You are an expert copywriter and customer research analyst. Analyze the following customer language samples to extract insights for advertising and marketing.

%s

CUSTOMER LANGUAGE SAMPLES:
%s

Please analyze these samples and provide a comprehensive JSON response with the following structure:

{
  "emotional_patterns": [
    {
      "emotion": "name of emotion (e.g., frustration, hope, fear, desire)",
      "frequency": "high/medium/low",
      "example_quotes": ["quote 1", "quote 2", "quote 3"],
      "trigger_words": ["word1", "word2"],
      "advertising_angle": "how to use this emotion in ads"
    }
  ],
  "pain_points": [
    {
      "pain_point": "description of the problem",
      "severity": "critical/major/minor",
      "frequency_mentioned": "percentage or count",
      "customer_quotes": ["quote 1", "quote 2"],
      "before_state": "how customers describe life before solution",
      "desired_outcome": "what they want instead"
    }
  ],
  "desire_triggers": [
    {
      "desire": "what customers want to achieve/become",
      "intensity": "high/medium/low",
      "language_patterns": ["pattern 1", "pattern 2"],
      "example_quotes": ["quote 1", "quote 2"],
      "aspirational_identity": "who they want to be"
    }
  ],
  "awareness_stages": {
    "unaware": {
      "indicators": ["phrases that show no awareness of problem"],
      "quotes": ["example quotes"]
    },
    "problem_aware": {
      "indicators": ["phrases showing they know the problem"],
      "quotes": ["example quotes"]
    },
    "solution_aware": {
      "indicators": ["phrases showing they know solutions exist"],
      "quotes": ["example quotes"]
    },
    "product_aware": {
      "indicators": ["phrases showing they know specific products"],
      "quotes": ["example quotes"]
    },
    "most_aware": {
      "indicators": ["phrases from current/past customers"],
      "quotes": ["example quotes"]
    }
  },
  "language_patterns": {
    "commonly_used_phrases": ["phrase 1", "phrase 2"],
    "metaphors_analogies": ["metaphor 1", "metaphor 2"],
    "objections": ["objection 1", "objection 2"],
    "questions_asked": ["question 1", "question 2"],
    "vocabulary_level": "simple/moderate/technical",
    "tone": "casual/professional/emotional"
  },
  "key_insights": [
    "insight 1",
    "insight 2",
    "insight 3"
  ]
}

Focus on extracting EXACT phrases and quotes that can be used directly in ad copy. Prioritize emotional, vivid language over generic descriptions.`

const frameworkPromptTpl = `Based on the following customer language analysis, create ad-ready hooks and body copy frameworks.

ANALYSIS DATA:
%s

Generate a JSON response with this structure:

{
  "hooks": {
    "problem_aware": [
      "Hook 1 using customer language",
      "Hook 2 using customer language",
      "Hook 3 using customer language"
    ],
    "solution_aware": [
      "Hook 1",
      "Hook 2",
      "Hook 3"
    ],
    "product_aware": [
      "Hook 1",
      "Hook 2",
      "Hook 3"
    ]
  },
  "body_copy_frameworks": [
    {
      "framework_name": "Problem-Agitate-Solution",
      "target_awareness": "problem_aware",
      "structure": {
        "problem": "Using customer's exact language to describe problem",
        "agitate": "Making them feel the pain using their words",
        "solution": "Presenting solution in their language"
      },
      "example": "Full example copy using customer quotes"
    },
    {
      "framework_name": "Before-After-Bridge",
      "target_awareness": "solution_aware",
      "structure": {
        "before": "Customer's current state in their words",
        "after": "Desired outcome in their words",
        "bridge": "How to get there"
      },
      "example": "Full example copy"
    }
  ],
  "headline_formulas": [
    "Formula 1 with customer language",
    "Formula 2 with customer language"
  ],
  "call_to_action_suggestions": [
    "CTA 1 based on desires",
    "CTA 2 based on pain points"
  ],
  "objection_handlers": [
    {
      "objection": "Common objection from analysis",
      "response": "How to handle it using customer language"
    }
  ]
}

Use EXACT customer quotes wherever possible. Make it ready to copy-paste into ads.`

const categorizePromptTpl = `Categorize each of these customer texts by Eugene Schwartz's 5 stages of awareness:
1. Unaware - Don't know they have a problem
2. Problem Aware - Know the problem, not the solution
3. Solution Aware - Know solutions exist, not which one
4. Product Aware - Know about specific products/options
5. Most Aware - Ready to buy, just comparing

TEXTS TO CATEGORIZE:
%s

Respond with JSON:
{
  "categorized": [
    {
      "text_index": 0,
      "stage": "problem_aware",
      "confidence": "high/medium/low",
      "reasoning": "why this categorization"
    }
  ]
}`

// BuildAnalysisPrompt 模式提取提示词，只取前 MaxBatchUnits 条文本
func BuildAnalysisPrompt(texts []string, productContext string) string {
	if len(texts) > MaxBatchUnits {
		texts = texts[:MaxBatchUnits]
	}
	var contextLine string
	if productContext != "" {
		contextLine = "PRODUCT/CATEGORY CONTEXT: " + productContext
	}
	return fmt.Sprintf(analysisPromptTpl, contextLine, strings.Join(texts, unitSeparator))
}

// BuildFrameworkPrompt 文案框架提示词，analysis 为上一轮结果的 JSON 形式
func BuildFrameworkPrompt(analysis any) (string, error) {
	data, err := indentJSON(analysis)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(frameworkPromptTpl, data), nil
}

// BuildCategorizePrompt 认知阶段归类提示词
func BuildCategorizePrompt(texts []string) (string, error) {
	if texts == nil {
		texts = []string{}
	}
	data, err := indentJSON(texts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(categorizePromptTpl, data), nil
}

func indentJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode prompt data: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
