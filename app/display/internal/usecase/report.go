package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/language_miner/app/display/internal/domain"
	"github.com/iWorld-y/language_miner/app/display/internal/repo"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/render"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ReportUseCase 报表业务逻辑
type ReportUseCase struct {
	repo repo.ReportRepo
	log  *log.Helper
}

// NewReportUseCase 创建报表业务逻辑实例
func NewReportUseCase(repo repo.ReportRepo, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 分页列出报表摘要
func (uc *ReportUseCase) List(ctx context.Context, page, pageSize int) (*domain.ReportList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	reports, total, err := uc.repo.ListReports(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &domain.ReportList{Reports: reports, Total: total}, nil
}

// Get 根据ID获取报表
func (uc *ReportUseCase) Get(ctx context.Context, id string) (*model.MessageMap, error) {
	return uc.repo.GetReport(ctx, id)
}

// Render 按格式重新渲染已保存的报表
func (uc *ReportUseCase) Render(ctx context.Context, id, format string) ([]byte, error) {
	mm, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return render.Render(mm, format)
}
