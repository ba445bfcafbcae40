package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/syncwatch/server/internal/proxy"
	"github.com/syncwatch/server/internal/search"
)

// SearchHandlers provides HTTP handlers for the search and page-proxy
// collaborators. Upstream failures degrade to empty results; they never
// fail the connection or reach the room core.
type SearchHandlers struct {
	search *search.Service
	proxy  *proxy.Service
	log    *zerolog.Logger
}

// NewSearchHandlers creates a new search handlers instance.
func NewSearchHandlers(searchService *search.Service, proxyService *proxy.Service, logger *zerolog.Logger) *SearchHandlers {
	return &SearchHandlers{
		search: searchService,
		proxy:  proxyService,
		log:    logger,
	}
}

// VideoSearchResponse represents the video search response body.
type VideoSearchResponse struct {
	Results []search.VideoResult `json:"results"`
}

// WebSearchResponse represents the web search response body.
type WebSearchResponse struct {
	Results []search.WebResult `json:"results"`
}

// YouTubeSearch proxies a video search.
// GET /api/youtube-search?q=
func (h *SearchHandlers) YouTubeSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, VideoSearchResponse{Results: []search.VideoResult{}})
		return
	}

	results, err := h.search.YouTube(c.Request.Context(), query)
	if err != nil {
		h.log.Warn().Err(err).Str("query", query).Msg("youtube search failed")
		results = nil
	}
	if results == nil {
		results = []search.VideoResult{}
	}
	c.JSON(http.StatusOK, VideoSearchResponse{Results: results})
}

// WebSearch proxies a web search.
// GET /api/web-search?q=
func (h *SearchHandlers) WebSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, WebSearchResponse{Results: []search.WebResult{}})
		return
	}

	results, err := h.search.Web(c.Request.Context(), query)
	if err != nil {
		h.log.Warn().Err(err).Str("query", query).Msg("web search failed")
		results = nil
	}
	if results == nil {
		results = []search.WebResult{}
	}
	c.JSON(http.StatusOK, WebSearchResponse{Results: results})
}

// Proxy fetches an external page for the shared browser.
// GET /api/proxy?url=
func (h *SearchHandlers) Proxy(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.String(http.StatusBadRequest, "Missing url parameter")
		return
	}

	page, err := h.proxy.Fetch(c.Request.Context(), target)
	if err != nil {
		h.log.Warn().Err(err).Str("url", target).Msg("proxy fetch failed")
		c.String(http.StatusInternalServerError, "Could not load page: %s", target)
		return
	}

	c.Data(http.StatusOK, page.ContentType, page.Body)
}
