package repo

import (
	"context"

	"github.com/iWorld-y/language_miner/app/display/internal/domain"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
)

// ReportRepo 报表仓库接口
type ReportRepo interface {
	// ListReports 分页获取报表摘要列表，按生成时间倒序
	ListReports(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error)
	// GetReport 根据ID获取完整的 MessageMap，不存在时返回 domain.ErrReportNotFound
	GetReport(ctx context.Context, id string) (*model.MessageMap, error)
}
