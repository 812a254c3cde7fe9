package data

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/language_miner/app/display/internal/domain"
	"github.com/iWorld-y/language_miner/app/display/internal/repo"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/store"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

// NewReportRepo 基于输出目录的报表仓库
func NewReportRepo(data *Data, logger log.Logger) repo.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reportRepo) ListReports(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error) {
	sums, total, err := r.data.store.List(page, pageSize)
	if err != nil {
		r.log.WithContext(ctx).Errorf("list reports: %v", err)
		return nil, 0, err
	}

	out := make([]*domain.ReportSummary, 0, len(sums))
	for _, s := range sums {
		out = append(out, &domain.ReportSummary{
			ID:              s.ID,
			GeneratedAt:     s.GeneratedAt,
			RunID:           s.RunID,
			Query:           s.Query,
			TopPainPoint:    s.ExecutiveSummary.TopPainPoint,
			DominantEmotion: s.ExecutiveSummary.DominantEmotion,
			PrimaryDesire:   s.ExecutiveSummary.PrimaryDesire,
			TotalItems:      s.TotalItems,
		})
	}
	return out, total, nil
}

func (r *reportRepo) GetReport(ctx context.Context, id string) (*model.MessageMap, error) {
	mm, err := r.data.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		r.log.WithContext(ctx).Errorf("get report %s: %v", id, err)
		return nil, err
	}
	return mm, nil
}
