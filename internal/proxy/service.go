package proxy

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Page is a fetched upstream document ready to serve into the co-browsing
// iframe.
type Page struct {
	ContentType string
	Body        []byte
}

// Service fetches external pages for the shared browser. HTML documents get
// a <base> tag and a navigation-intercept script injected so links and form
// submits keep routing through the proxy; everything else streams through
// untouched. Upstream certificate errors are tolerated: this proxy exists
// to render arbitrary third-party pages, not to vouch for them.
type Service struct {
	client *http.Client
	log    *zerolog.Logger
}

// NewService builds a proxy service.
func NewService(logger *zerolog.Logger) *Service {
	return &Service{
		client: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		log: logger,
	}
}

// Fetch retrieves the target and prepares it for in-iframe rendering.
func (s *Service) Fetch(ctx context.Context, target string) (*Page, error) {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid target url %q", target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if !strings.Contains(contentType, "text/html") {
		return &Page{ContentType: contentType, Body: body}, nil
	}

	base := parsed.Scheme + "://" + parsed.Host
	rewritten := injectHead(string(body), base, target)
	return &Page{ContentType: "text/html; charset=utf-8", Body: []byte(rewritten)}, nil
}

// injectHead places the base tag and intercept script at the top of <head>,
// or prepends them when the document has no head at all.
func injectHead(html, base, target string) string {
	injection := fmt.Sprintf(`<base href="%s/" target="_self">`, base) + interceptScriptFor(target)

	for _, head := range []string{"<head>", "<HEAD>"} {
		if strings.Contains(html, head) {
			return strings.Replace(html, head, head+injection, 1)
		}
	}
	return injection + html
}

func interceptScriptFor(target string) string {
	return strings.ReplaceAll(interceptScript, "__TARGET_URL__", target)
}

// interceptScript reroutes clicks and form submissions through the proxy and
// notifies the parent frame which URL is being shown.
const interceptScript = `
<script>
(function() {
  document.addEventListener('click', function(e) {
    var link = e.target.closest('a');
    if (!link || !link.href) return;
    var href = link.getAttribute('href');
    if (!href || href.indexOf('#') === 0 || href.indexOf('javascript:') === 0) return;
    e.preventDefault();
    var absolute = new URL(href, document.baseURI).href;
    if (absolute.indexOf('http') === 0) {
      window.location.href = '/api/proxy?url=' + encodeURIComponent(absolute);
    }
  }, true);

  document.addEventListener('submit', function(e) {
    var form = e.target;
    if (!form.action) return;
    e.preventDefault();
    var action = new URL(form.action, document.baseURI).href;
    var params = new URLSearchParams(new FormData(form));
    window.location.href = '/api/proxy?url=' + encodeURIComponent(action + '?' + params.toString());
  }, true);

  try {
    window.parent.postMessage({ type: 'proxy-navigate', url: '__TARGET_URL__' }, '*');
  } catch (e) {}
})();
</script>`
