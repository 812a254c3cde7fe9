package service

import (
	"context"
	"errors"
	"net/http"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/language_miner/app/display/internal/domain"
	"github.com/iWorld-y/language_miner/app/display/internal/usecase"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/render"
)

const (
	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
)

// ListReportsReq 列表查询参数
type ListReportsReq struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DisplayService 报告浏览服务
type DisplayService struct {
	ucReport *usecase.ReportUseCase
	log      *log.Helper
}

func NewDisplayService(ucReport *usecase.ReportUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucReport: ucReport,
		log:      log.NewHelper(logger),
	}
}

// ListReports GET /api/reports?page=&page_size=
func (s *DisplayService) ListReports(ctx khttp.Context) error {
	var in ListReportsReq
	if err := ctx.BindQuery(&in); err != nil {
		return kerrors.BadRequest("INVALID_QUERY", err.Error())
	}
	h := ctx.Middleware(func(c context.Context, req any) (any, error) {
		r := req.(*ListReportsReq)
		return s.ucReport.List(c, r.Page, r.PageSize)
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// GetReport GET /api/reports/{id}，返回完整的 MessageMap
func (s *DisplayService) GetReport(ctx khttp.Context) error {
	id := ctx.Vars().Get("id")
	h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		mm, err := s.ucReport.Get(c, id)
		return mm, s.wrapErr(id, err)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// ReportHTML GET /reports/{id}
func (s *DisplayService) ReportHTML(ctx khttp.Context) error {
	return s.rendered(ctx, render.FormatHTML, contentTypeHTML)
}

// ReportMarkdown GET /reports/{id}/markdown
func (s *DisplayService) ReportMarkdown(ctx khttp.Context) error {
	return s.rendered(ctx, render.FormatMarkdown, contentTypeMarkdown)
}

func (s *DisplayService) rendered(ctx khttp.Context, format, contentType string) error {
	id := ctx.Vars().Get("id")
	h := ctx.Middleware(func(c context.Context, _ any) (any, error) {
		b, err := s.ucReport.Render(c, id, format)
		return b, s.wrapErr(id, err)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Blob(http.StatusOK, contentType, out.([]byte))
}

func (s *DisplayService) wrapErr(id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrReportNotFound) {
		return kerrors.NotFound("REPORT_NOT_FOUND", "report "+id+" not found")
	}
	s.log.Errorf("load report %s: %v", id, err)
	return kerrors.InternalServer("REPORT_UNAVAILABLE", err.Error())
}
