package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// 输出格式
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatAll      = "all"
)

// FilePrefix 输出文件名前缀
const FilePrefix = "message_map_"

var extensions = map[string]string{
	FormatJSON:     ".json",
	FormatMarkdown: ".md",
	FormatHTML:     ".html",
}

// ExpandFormats 展开格式选择，all 表示三种都输出
func ExpandFormats(format string) ([]string, error) {
	switch format {
	case FormatAll:
		return []string{FormatJSON, FormatMarkdown, FormatHTML}, nil
	case FormatJSON, FormatMarkdown, FormatHTML:
		return []string{format}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// BaseName 由 generated_at 得到文件名（不含扩展名），如 message_map_20250304_050607
func BaseName(mm *model.MessageMap) (string, error) {
	ts, err := time.Parse(time.RFC3339, mm.GeneratedAt)
	if err != nil {
		return "", fmt.Errorf("invalid generated_at %q: %w", mm.GeneratedAt, err)
	}
	return FilePrefix + ts.Format("20060102_150405"), nil
}

// Render 按格式渲染
func Render(mm *model.MessageMap, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return JSON(mm)
	case FormatMarkdown:
		return Markdown(mm), nil
	case FormatHTML:
		return HTML(mm)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Save 把 MessageMap 写入 dir，返回生成的文件路径
func Save(dir string, mm *model.MessageMap, format string) ([]string, error) {
	formats, err := ExpandFormats(format)
	if err != nil {
		return nil, err
	}
	base, err := BaseName(mm)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for _, f := range formats {
		data, err := Render(mm, f)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, base+extensions[f])
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
