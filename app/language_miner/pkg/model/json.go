package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// List 序列化时 nil 输出为 []，保证报告里不出现 null
type List[T any] []T

// MarshalJSON 实现 json.Marshaler
func (l List[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return marshalRaw([]T(l))
}

// marshalRaw 与 json.Marshal 相同，但不转义 <、>、&
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FlexString 兼容模型把字符串字段写成数字或布尔值的情况
type FlexString string

// UnmarshalJSON 实现 json.Unmarshaler
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '{', '[':
		return fmt.Errorf("flex string: unsupported value %s", b)
	default:
		// 数字 / true / false 原样保留字面量
		*f = FlexString(b)
	}
	return nil
}

// String 返回字符串形式
func (f FlexString) String() string {
	return string(f)
}

// OrderedMap 保留 JSON 对象键顺序的映射
//
// 模型输出的 hooks、structure 等对象的键序本身带有语义（如 problem → agitate → solution），
// 普通 map 会丢失这一顺序。零值可直接使用，序列化为 {}。
type OrderedMap[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// Set 写入键值，已存在的键保持原位置
func (om *OrderedMap[V]) Set(key string, value V) {
	if om.m == nil {
		om.m = orderedmap.New[string, V]()
	}
	om.m.Set(key, value)
}

// Get 读取键值
func (om OrderedMap[V]) Get(key string) (V, bool) {
	if om.m == nil {
		var zero V
		return zero, false
	}
	return om.m.Get(key)
}

// Keys 按插入顺序返回所有键
func (om OrderedMap[V]) Keys() []string {
	if om.m == nil {
		return nil
	}
	keys := make([]string, 0, om.m.Len())
	for pair := om.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len 键数量
func (om OrderedMap[V]) Len() int {
	if om.m == nil {
		return 0
	}
	return om.m.Len()
}

// MarshalJSON 按插入顺序输出对象
func (om OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if om.Len() == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := om.m.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := marshalRaw(pair.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalRaw(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("ordered map: key %s: %w", pair.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 按出现顺序读取对象，null 视为空对象
func (om *OrderedMap[V]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*om = OrderedMap[V]{}
		return nil
	}
	if b[0] != '{' {
		return fmt.Errorf("ordered map: expected object, got %s", b)
	}
	m := orderedmap.New[string, V]()
	if err := m.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("ordered map: %w", err)
	}
	om.m = m
	return nil
}
