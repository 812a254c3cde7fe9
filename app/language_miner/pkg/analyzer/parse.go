package analyzer

import (
	"encoding/json"
	"errors"
	"strings"
)

var errUnexpectedShape = errors.New("response does not match expected schema")

var (
	analysisKeys  = []string{"emotional_patterns", "pain_points", "desire_triggers", "awareness_stages", "language_patterns", "key_insights"}
	frameworkKeys = []string{"hooks", "body_copy_frameworks", "headline_formulas", "call_to_action_suggestions", "objection_handlers"}
)

// cleanJSON 去掉模型常见的 markdown 代码块包裹
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeObject 把模型输出解析进 out
//
// 输出必须是 JSON 对象且至少包含一个已知的顶层键，字段类型不符同样视为结构不符。
func decodeObject(text string, keys []string, out any) error {
	body := []byte(cleanJSON(text))

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return err
	}
	if top == nil || !hasAnyKey(top, keys) {
		return errUnexpectedShape
	}
	return json.Unmarshal(body, out)
}

func hasAnyKey(m map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
