package model

// Kind 单次分析调用的结果类型
type Kind int

const (
	KindStructured Kind = iota + 1 // 成功解析为预期结构
	KindRaw                        // 模型有输出但结构不符，保留原文
	KindError                      // 调用失败
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindRaw:
		return "raw"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Result 一次 LLM 调用的三态结果 {Structured, Raw, Error}
//
// 调用方必须通过 Kind() 分支处理，不能假设模型一定返回了合法结构。
type Result[T any] struct {
	kind  Kind
	value T
	raw   string
	err   string
}

// Structured 构造成功结果
func Structured[T any](v T) Result[T] {
	return Result[T]{kind: KindStructured, value: v}
}

// Raw 构造降级结果，保留模型原始输出
func Raw[T any](text string) Result[T] {
	return Result[T]{kind: KindRaw, raw: text}
}

// Failed 构造失败结果
func Failed[T any](err error) Result[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Result[T]{kind: KindError, err: msg}
}

// Kind 结果类型，零值 Result 返回 0
func (r Result[T]) Kind() Kind {
	return r.kind
}

// Value 仅在 Structured 时返回 true
func (r Result[T]) Value() (T, bool) {
	return r.value, r.kind == KindStructured
}

// OrZero Structured 时返回结构体，否则返回零值（所有容器为空）
func (r Result[T]) OrZero() T {
	if r.kind == KindStructured {
		return r.value
	}
	var zero T
	return zero
}

// RawText Raw 时的模型原文
func (r Result[T]) RawText() string {
	return r.raw
}

// ErrMessage Error 时的错误信息
func (r Result[T]) ErrMessage() string {
	return r.err
}

// Status 转换为报告中的调用状态
func (r Result[T]) Status() PassStatus {
	return PassStatus{Status: r.kind.String(), Raw: r.raw, Error: r.err}
}
