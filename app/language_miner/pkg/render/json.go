// Package render 把 MessageMap 渲染为 JSON、Markdown、HTML 三种格式
//
// 渲染是纯函数：不修改 MessageMap，同一输入总是得到相同的字节。
package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// JSON 结构化格式，字段顺序固定，可无损还原 MessageMap
//
// 引用原文中的 <、>、& 原样输出，不转成 \u003c 之类的转义。
func JSON(mm *model.MessageMap) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(mm); err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode 从 JSON 还原 MessageMap
func Decode(data []byte) (*model.MessageMap, error) {
	var mm model.MessageMap
	if err := json.Unmarshal(data, &mm); err != nil {
		return nil, fmt.Errorf("decode message map: %w", err)
	}
	return &mm, nil
}
