package usecase

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/language_miner/app/display/internal/domain"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/render"
)

// mockReportRepo 模拟报表仓库
type mockReportRepo struct {
	page, pageSize int
}

func (m *mockReportRepo) ListReports(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error) {
	m.page, m.pageSize = page, pageSize
	return []*domain.ReportSummary{{ID: "message_map_20250101_000000", Query: "Test Report"}}, 1, nil
}

func (m *mockReportRepo) GetReport(ctx context.Context, id string) (*model.MessageMap, error) {
	if id != "message_map_20250101_000000" {
		return nil, domain.ErrReportNotFound
	}
	return &model.MessageMap{
		GeneratedAt: "2025-01-01T00:00:00Z",
		Metadata:    model.Metadata{Query: "Test Report"},
	}, nil
}

func TestReportUseCase_List(t *testing.T) {
	repo := &mockReportRepo{}
	uc := NewReportUseCase(repo, log.DefaultLogger)

	list, err := uc.List(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Reports, 1)
	assert.Equal(t, "Test Report", list.Reports[0].Query)
	assert.Equal(t, 1, repo.page)
	assert.Equal(t, maxPageSize, repo.pageSize)
}

func TestReportUseCase_Render(t *testing.T) {
	uc := NewReportUseCase(&mockReportRepo{}, log.DefaultLogger)

	md, err := uc.Render(context.Background(), "message_map_20250101_000000", render.FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Customer Language Message Map")
	assert.Contains(t, string(md), "Test Report")

	_, err = uc.Render(context.Background(), "missing", render.FormatHTML)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	_, err = uc.Render(context.Background(), "message_map_20250101_000000", "pdf")
	assert.Error(t, err)
}
