package amazon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/logger"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
)

const (
	asinLength     = 10
	reviewsPerPage = 10
	dateLayout     = "2006-01-02"
)

var (
	numberRe = regexp.MustCompile(`\d+(\.\d+)?`)
	dateRe   = regexp.MustCompile(`[A-Z][a-z]+ \d{1,2}, \d{4}`)
)

// Scraper 电商评论抓取
type Scraper struct {
	baseURL           string
	maxProducts       int
	reviewsPerProduct int
	client            *http.Client
	limiter           *rate.Limiter
}

// Ensure Scraper implements source.Connector
var _ source.Connector = (*Scraper)(nil)

// NewScraper 创建评论抓取器
func NewScraper(cfg config.AmazonConfig, scraping config.ScrapingConfig) *Scraper {
	header := http.Header{}
	header.Set("Accept-Language", "en-US,en;q=0.9")
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &Scraper{
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		maxProducts:       cfg.MaxProducts,
		reviewsPerProduct: cfg.ReviewsPerProduct,
		client:            source.NewHTTPClient(scraping.RequestTimeoutDuration(), cfg.UserAgent, header),
		limiter:           source.NewLimiter(scraping.Delay()),
	}
}

// Name 实现 source.Connector
func (s *Scraper) Name() string {
	return source.NameAmazon
}

// Fetch 搜索商品后抓取每个商品的最新评论；req.Targets 非空时视为 ASIN 列表，跳过搜索
func (s *Scraper) Fetch(ctx context.Context, req *source.Request) ([]model.SourceRecord, error) {
	asins := req.Targets
	if len(asins) == 0 {
		var err error
		asins, err = s.SearchProducts(ctx, req.Query)
		if err != nil {
			return nil, err
		}
	}
	logger.Log.Infof("找到 %d 个商品", len(asins))

	// MaxItems 按每个商品的评论数计
	perProduct := req.MaxItems
	if perProduct <= 0 {
		perProduct = s.reviewsPerProduct
	}
	pages := perProduct / reviewsPerPage
	if pages < 1 {
		pages = 1
	}

	var records []model.SourceRecord
	for i, asin := range asins {
		logger.Log.Infof("正在抓取商品 %d/%d (ASIN: %s)", i+1, len(asins), asin)
		reviews, err := s.ProductReviews(ctx, asin, pages)
		if err != nil && ctx.Err() != nil {
			return records, ctx.Err()
		}
		if perProduct > 0 && len(reviews) > perProduct {
			reviews = reviews[:perProduct]
		}
		records = append(records, reviews...)
	}
	return records, nil
}

// SearchProducts 搜索结果页中的商品 ASIN
func (s *Scraper) SearchProducts(ctx context.Context, query string) ([]string, error) {
	doc, err := s.getDocument(ctx, s.baseURL+"/s?"+url.Values{"k": {query}}.Encode())
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	var asins []string
	seen := make(map[string]bool)
	doc.Find("div[data-asin]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(asins) >= s.maxProducts {
			return false
		}
		asin := strings.TrimSpace(sel.AttrOr("data-asin", ""))
		if len(asin) == asinLength && !seen[asin] {
			seen[asin] = true
			asins = append(asins, asin)
		}
		return true
	})
	return asins, nil
}

// ProductReviews 逐页抓取评论，遇到空页或请求失败即停止
func (s *Scraper) ProductReviews(ctx context.Context, asin string, maxPages int) ([]model.SourceRecord, error) {
	var records []model.SourceRecord
	for page := 1; page <= maxPages; page++ {
		q := url.Values{}
		q.Set("pageNumber", strconv.Itoa(page))
		q.Set("sortBy", "recent")
		u := fmt.Sprintf("%s/product-reviews/%s/ref=cm_cr_arp_d_viewopt_sr?%s", s.baseURL, url.PathEscape(asin), q.Encode())

		doc, err := s.getDocument(ctx, u)
		if err != nil {
			logger.Log.Warnf("抓取 %s 第 %d 页失败: %v", asin, page, err)
			return records, err
		}

		reviews := doc.Find("div[data-hook=review]")
		if reviews.Length() == 0 {
			logger.Log.Debugf("%s 第 %d 页没有评论", asin, page)
			break
		}
		reviews.Each(func(_ int, sel *goquery.Selection) {
			records = append(records, parseReview(sel, asin))
		})
	}
	return records, nil
}

func (s *Scraper) getDocument(ctx context.Context, u string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

func parseReview(sel *goquery.Selection, asin string) model.SourceRecord {
	rec := model.SourceRecord{
		Source:    model.SourceRetail,
		Platform:  "amazon",
		ID:        sel.AttrOr("id", ""),
		Container: asin,
		Title:     text(sel, "a[data-hook=review-title]"),
		Text:      text(sel, "span[data-hook=review-body]"),
		Author:    text(sel, "span.a-profile-name"),
		Date:      normalizeDate(text(sel, "span[data-hook=review-date]")),
		Verified:  sel.Find("span[data-hook=avp-badge]").Length() > 0,
	}
	if rec.Author == "" {
		rec.Author = "Anonymous"
	}
	if m := numberRe.FindString(text(sel, "i[data-hook=review-star-rating]")); m != "" {
		rec.Rating, _ = strconv.ParseFloat(m, 64)
	}
	if m := numberRe.FindString(text(sel, "span[data-hook=helpful-vote-statement]")); m != "" {
		rec.Score, _ = strconv.ParseInt(strings.SplitN(m, ".", 2)[0], 10, 64)
	}
	return rec
}

func text(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// normalizeDate "Reviewed in the United States on March 5, 2024" -> "2024-03-05"
//
// 统一成 YYYY-MM-DD 后可以直接按字典序比较；无法解析时保留原文。
func normalizeDate(raw string) string {
	m := dateRe.FindString(raw)
	if m == "" {
		return raw
	}
	t, err := time.Parse("January 2, 2006", m)
	if err != nil {
		return raw
	}
	return t.Format(dateLayout)
}
