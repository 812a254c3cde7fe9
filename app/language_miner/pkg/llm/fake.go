package llm

import (
	"context"
	"sync"
)

// Reply FakeClient 的一次预设应答
type Reply struct {
	Text string
	Err  error
}

// FakeClient 按顺序返回预设应答，用于离线测试
type FakeClient struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

// NewFakeClient 创建 FakeClient
func NewFakeClient(replies ...Reply) *FakeClient {
	return &FakeClient{replies: replies}
}

// Complete 实现 Client 接口，预设应答用完后返回空字符串
func (f *FakeClient) Complete(_ context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return "", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.Text, r.Err
}

// Requests 已收到的请求
func (f *FakeClient) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}
