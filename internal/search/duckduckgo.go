package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"alcyxob/fitness-coach/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultHTMLURL  = "https://html.duckduckgo.com/html/"
	DefaultImageURL = "https://duckduckgo.com/"

	queryPrefix     = "fitness health "
	maxSnippetRunes = 300
	megabyte        = 1024 * 1024
	userAgent       = "Mozilla/5.0 (compatible; fitness-coach/1.0)"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected search response status")
	ErrNoVQDToken       = errors.New("image search token not found")
)

var vqdPattern = regexp.MustCompile(`vqd=["']?([\d-]+)["'&]?`)

type Options struct {
	HTMLURL     string // text search endpoint
	ImageURL    string // host serving the token page and i.js
	HTTPClient  *http.Client
	CacheSizeMB int
	CacheTTL    time.Duration
}

// Client queries DuckDuckGo for web snippets and exercise images.
type Client struct {
	htmlURL    string
	imageURL   string
	httpClient *http.Client
	cache      *freecache.Cache
	cacheTTL   int // seconds
}

func NewClient(opts Options) *Client {
	if opts.HTMLURL == "" {
		opts.HTMLURL = DefaultHTMLURL
	}
	if opts.ImageURL == "" {
		opts.ImageURL = DefaultImageURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.CacheSizeMB <= 0 {
		opts.CacheSizeMB = 16
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}

	return &Client{
		htmlURL:    opts.HTMLURL,
		imageURL:   strings.TrimRight(opts.ImageURL, "/") + "/",
		httpClient: opts.HTTPClient,
		cache:      freecache.NewCache(opts.CacheSizeMB * megabyte),
		cacheTTL:   int(opts.CacheTTL.Seconds()),
	}
}

// SearchText returns up to limit web results for "fitness health <query>".
func (c *Client) SearchText(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	cacheKey := fmt.Sprintf("text::%d::%s", limit, strings.ToLower(strings.TrimSpace(query)))
	var results []domain.SearchResult
	if c.fromCache(cacheKey, &results) {
		return results, nil
	}

	form := url.Values{}
	form.Set("q", queryPrefix+query)
	form.Set("kl", "us-en")
	form.Set("df", "y") // past year

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.htmlURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	results = make([]domain.SearchResult, 0, limit)
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		results = append(results, domain.SearchResult{
			Title:   title,
			URL:     resolveResultURL(link.AttrOr("href", "")),
			Content: truncateRunes(strings.TrimSpace(s.Find(".result__snippet").Text()), maxSnippetRunes),
		})
		return len(results) < limit
	})

	c.toCache(cacheKey, results)
	return results, nil
}

type imageResponse struct {
	Results []struct {
		Title     string `json:"title"`
		Image     string `json:"image"`
		Thumbnail string `json:"thumbnail"`
		URL       string `json:"url"`
		Source    string `json:"source"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"results"`
}

// SearchImages returns up to limit images for query. It first fetches the
// search page to obtain the vqd token the image endpoint requires.
func (c *Client) SearchImages(ctx context.Context, query string, limit int) ([]domain.ExerciseImage, error) {
	if limit <= 0 {
		limit = 1
	}
	cacheKey := fmt.Sprintf("images::%d::%s", limit, strings.ToLower(strings.TrimSpace(query)))
	var images []domain.ExerciseImage
	if c.fromCache(cacheKey, &images) {
		return images, nil
	}

	vqd, err := c.fetchVQD(ctx, query)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("l", "us-en")
	params.Set("o", "json")
	params.Set("q", query)
	params.Set("vqd", vqd)
	params.Set("f", ",,,,,")
	params.Set("p", "1")

	body, err := c.get(ctx, c.imageURL+"i.js?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var parsed imageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal image results: %w", err)
	}

	images = make([]domain.ExerciseImage, 0, limit)
	for _, r := range parsed.Results {
		if r.Image == "" {
			continue
		}
		images = append(images, domain.ExerciseImage{
			Exercise: query,
			URL:      r.Image,
			Title:    r.Title,
			Source:   r.Source,
			Width:    r.Width,
			Height:   r.Height,
		})
		if len(images) == limit {
			break
		}
	}

	c.toCache(cacheKey, images)
	return images, nil
}

func (c *Client) fetchVQD(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("iax", "images")
	params.Set("ia", "images")

	body, err := c.get(ctx, c.imageURL+"?"+params.Encode())
	if err != nil {
		return "", err
	}
	m := vqdPattern.FindSubmatch(body)
	if m == nil {
		return "", ErrNoVQDToken
	}
	return string(m[1]), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) fromCache(key string, dst any) bool {
	cached, err := c.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, dst); err != nil {
		log.Errorf("failed to unmarshal cached search %s: %s", key, err)
		return false
	}
	log.Tracef("search %s served from cache", key)
	return true
}

func (c *Client) toCache(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.Set([]byte(key), raw, c.cacheTTL); err != nil {
		log.Errorf("failed to cache search %s: %s", key, err)
	}
}

// resolveResultURL unwraps DuckDuckGo redirect links (//duckduckgo.com/l/?uddg=...).
func resolveResultURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" && strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	return href
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
