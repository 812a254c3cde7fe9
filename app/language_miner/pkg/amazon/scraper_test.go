package amazon

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/model"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
)

const searchPage = `<html><body>
<div data-asin="B000000001"></div>
<div data-asin=""></div>
<div data-asin="short"></div>
<div data-asin="B000000001"></div>
<div data-asin="B000000002"></div>
<div data-asin="B000000003"></div>
</body></html>`

const reviewPage = `<html><body>
<div data-hook="review" id="R1">
  <i data-hook="review-star-rating"><span>2.0 out of 5 stars</span></i>
  <a data-hook="review-title"><span>Wobbly after a week</span></a>
  <span class="a-profile-name">Jane</span>
  <span data-hook="review-date">Reviewed in the United States on March 5, 2024</span>
  <span data-hook="avp-badge">Verified Purchase</span>
  <span data-hook="review-body"><span>The desk shakes when I type.</span></span>
  <span data-hook="helpful-vote-statement">12 people found this helpful</span>
</div>
<div data-hook="review" id="R2">
  <i data-hook="review-star-rating"><span>5.0 out of 5 stars</span></i>
  <span data-hook="review-date">sometime last year</span>
  <span data-hook="review-body">Love it</span>
</div>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/s", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "standing desk", r.URL.Query().Get("k"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		fmt.Fprint(w, searchPage)
	})
	mux.HandleFunc("/product-reviews/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNumber") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		assert.Equal(t, "recent", r.URL.Query().Get("sortBy"))
		if r.URL.Path == "/product-reviews/B000000002/ref=cm_cr_arp_d_viewopt_sr" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, reviewPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestScraper(srv *httptest.Server) *Scraper {
	return NewScraper(config.AmazonConfig{
		BaseURL:           srv.URL,
		UserAgent:         "test-agent",
		MaxProducts:       2,
		ReviewsPerProduct: 30,
	}, config.ScrapingConfig{RequestTimeout: 5})
}

func TestSearchProducts(t *testing.T) {
	s := newTestScraper(newServer(t))

	asins, err := s.SearchProducts(context.Background(), "standing desk")
	require.NoError(t, err)
	assert.Equal(t, []string{"B000000001", "B000000002"}, asins)
}

func TestFetch(t *testing.T) {
	s := newTestScraper(newServer(t))

	records, err := s.Fetch(context.Background(), &source.Request{Query: "standing desk"})
	require.NoError(t, err)
	// B000000002 的评论页失败，只保留第一个商品的两条评论
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, model.SourceRetail, r.Source)
	assert.Equal(t, "amazon", r.Platform)
	assert.Equal(t, "R1", r.ID)
	assert.Equal(t, "B000000001", r.Container)
	assert.Equal(t, "Wobbly after a week", r.Title)
	assert.Equal(t, "The desk shakes when I type.", r.Text)
	assert.Equal(t, "Jane", r.Author)
	assert.Equal(t, 2.0, r.Rating)
	assert.Equal(t, int64(12), r.Score)
	assert.Equal(t, "2024-03-05", r.Date)
	assert.True(t, r.Verified)

	r = records[1]
	assert.Equal(t, "Anonymous", r.Author)
	assert.Equal(t, "sometime last year", r.Date)
	assert.False(t, r.Verified)
	assert.Equal(t, int64(0), r.Score)
}

func TestFetchTargetsAndLimit(t *testing.T) {
	s := newTestScraper(newServer(t))

	records, err := s.Fetch(context.Background(), &source.Request{
		Targets:  []string{"B000000003", "B000000004"},
		MaxItems: 1,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "B000000003", records[0].Container)
	assert.Equal(t, "B000000004", records[1].Container)
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2023-12-31", normalizeDate("Reviewed in Canada on December 31, 2023"))
	assert.Equal(t, "", normalizeDate(""))
	assert.Equal(t, "yesterday", normalizeDate("yesterday"))
}
