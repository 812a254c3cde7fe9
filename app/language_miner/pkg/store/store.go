// Package store 读取输出目录中已保存的 MessageMap
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/render"
)

// ErrNotFound 报告不存在
var ErrNotFound = errors.New("report not found")

// Summary 报告列表项
type Summary struct {
	ID               string
	GeneratedAt      string
	RunID            string
	Query            string
	ExecutiveSummary model.ExecutiveSummary
	TotalItems       int
}

// FileStore 基于目录的报告存储，ID 为不带扩展名的文件名
type FileStore struct {
	dir string
}

// NewFileStore 创建存储
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir 存储目录
func (s *FileStore) Dir() string {
	return s.dir
}

// Save 写入报告的所有格式
func (s *FileStore) Save(mm *model.MessageMap, format string) ([]string, error) {
	return render.Save(s.dir, mm, format)
}

// IDs 按时间倒序列出所有报告 ID
func (s *FileStore) IDs() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, render.FilePrefix+"*.json"))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	// 文件名中的时间戳为 yyyymmdd_hhmmss，字典序即时间序
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// Get 读取报告
func (s *FileStore) Get(id string) (*model.MessageMap, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", id, err)
	}
	return render.Decode(data)
}

// List 分页列出报告摘要，page 从 1 开始
func (s *FileStore) List(page, pageSize int) ([]Summary, int, error) {
	ids, err := s.IDs()
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	total := len(ids)
	start := (page - 1) * pageSize
	if start >= total {
		return []Summary{}, total, nil
	}
	end := min(start+pageSize, total)

	out := make([]Summary, 0, end-start)
	for _, id := range ids[start:end] {
		mm, err := s.Get(id)
		if err != nil {
			return nil, 0, err
		}
		sum := Summary{
			ID:               id,
			GeneratedAt:      mm.GeneratedAt,
			RunID:            mm.RunID,
			Query:            mm.Metadata.Query,
			ExecutiveSummary: mm.ExecutiveSummary,
		}
		if mm.RawDataSummary != nil {
			sum.TotalItems = mm.RawDataSummary.TotalItems
		}
		out = append(out, sum)
	}
	return out, total, nil
}

func validID(id string) bool {
	return strings.HasPrefix(id, render.FilePrefix) && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
