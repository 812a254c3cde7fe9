package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/iWorld-y/language_miner/app/display/internal/conf"
	"github.com/iWorld-y/language_miner/app/display/internal/service"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, auth *conf.Auth, s *service.DisplayService, logger log.Logger) *http.Server {
	mws := []middleware.Middleware{
		recovery.Recovery(),
		logging.Server(logger),
	}
	if auth != nil && auth.JwtKey != "" {
		key := []byte(auth.JwtKey)
		mws = append(mws, jwt.Server(
			func(*jwtv5.Token) (any, error) { return key, nil },
			jwt.WithSigningMethod(jwtv5.SigningMethodHS256),
		))
	}

	var opts = []http.ServerOption{
		http.Middleware(mws...),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/")
	r.GET("/api/reports", s.ListReports)
	r.GET("/api/reports/{id}", s.GetReport)
	r.GET("/reports/{id}", s.ReportHTML)
	r.GET("/reports/{id}/markdown", s.ReportMarkdown)

	// 首页为静态页面，通过 /api/reports 拉取列表
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}
