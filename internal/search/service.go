package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	defaultYouTubeBase = "https://www.youtube.com"
	defaultWebBase     = "https://html.duckduckgo.com"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxResults = 15
)

// VideoResult is one video search hit.
type VideoResult struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
}

// WebResult is one web search hit.
type WebResult struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Snippet    string `json:"snippet"`
	DisplayURL string `json:"displayUrl"`
}

// Service scrapes public search pages. It is a peripheral collaborator:
// failures degrade to empty results at the HTTP handler and never reach
// the room core.
type Service struct {
	client      *http.Client
	youtubeBase string
	webBase     string
	log         *zerolog.Logger
}

// Option tweaks the service, mainly for tests.
type Option func(*Service)

// WithYouTubeBase overrides the YouTube base URL.
func WithYouTubeBase(base string) Option {
	return func(s *Service) { s.youtubeBase = base }
}

// WithWebBase overrides the web search base URL.
func WithWebBase(base string) Option {
	return func(s *Service) { s.webBase = base }
}

// NewService builds a search service.
func NewService(logger *zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		client:      &http.Client{Timeout: 10 * time.Second},
		youtubeBase: defaultYouTubeBase,
		webBase:     defaultWebBase,
		log:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	videoIDRe = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)
	titleRe   = regexp.MustCompile(`"title":\{"runs":\[\{"text":"(.*?)"\}\]`)
	channelRe = regexp.MustCompile(`"ownerText":\{"runs":\[\{"text":"(.*?)"\}`)
)

// YouTube scrapes the results page for a query. The page embeds its data in
// a script blob, so this pulls ids, titles and channels with regexes, the
// same way the upstream page has been scraped for years.
func (s *Service) YouTube(ctx context.Context, query string) ([]VideoResult, error) {
	html, err := s.fetch(ctx, s.youtubeBase+"/results?search_query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var videoIDs []string
	seen := make(map[string]struct{})
	for _, m := range videoIDRe.FindAllStringSubmatch(html, -1) {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		videoIDs = append(videoIDs, m[1])
	}

	var titles, channels []string
	for _, m := range titleRe.FindAllStringSubmatch(html, -1) {
		titles = append(titles, m[1])
	}
	for _, m := range channelRe.FindAllStringSubmatch(html, -1) {
		channels = append(channels, m[1])
	}

	count := min(len(videoIDs), maxResults)
	results := make([]VideoResult, 0, count)
	for i := 0; i < count; i++ {
		r := VideoResult{
			VideoID:   videoIDs[i],
			Title:     "Untitled Video",
			Channel:   "Unknown Channel",
			Thumbnail: fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", videoIDs[i]),
		}
		if i < len(titles) {
			r.Title = titles[i]
		}
		if i < len(channels) {
			r.Channel = channels[i]
		}
		results = append(results, r)
	}
	return results, nil
}

// Web scrapes the DuckDuckGo HTML endpoint for a query.
func (s *Service) Web(ctx context.Context, query string) ([]WebResult, error) {
	html, err := s.fetch(ctx, s.webBase+"/html/?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var results []WebResult
	doc.Find(".result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxResults {
			return false
		}
		titleEl := sel.Find(".result__a")

		title := strings.TrimSpace(titleEl.Text())
		if title == "" {
			return true
		}
		href, _ := titleEl.Attr("href")
		results = append(results, WebResult{
			Title:      title,
			URL:        unwrapRedirect(href),
			Snippet:    strings.TrimSpace(sel.Find(".result__snippet").Text()),
			DisplayURL: strings.TrimSpace(sel.Find(".result__url").Text()),
		})
		return true
	})
	return results, nil
}

// unwrapRedirect extracts the target from DuckDuckGo's uddg redirect wrapper.
func unwrapRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	rest := strings.SplitN(href, "uddg=", 2)[1]
	rest = strings.SplitN(rest, "&", 2)[0]
	if target, err := url.QueryUnescape(rest); err == nil {
		return target
	}
	return href
}

func (s *Service) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	var sb strings.Builder
	if _, err := io.Copy(&sb, resp.Body); err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return sb.String(), nil
}
