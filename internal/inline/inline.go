package inline

import (
	"encoding/base64"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jpfieber/jots-google-importer/internal/logging"
)

// imgSrcPattern extracts src attribute values from <img> tags.
var imgSrcPattern = regexp.MustCompile(`<img[^>]+src=["']?([^"'\s>]+)["']?`)

// MaxImageSize caps a single fetched image at 10MB.
const MaxImageSize = 10 * 1024 * 1024

// Inliner rewrites remote <img> references in HTML as inline data URIs.
type Inliner struct {
	client *http.Client
	logger *slog.Logger
}

// New creates an Inliner with a timeout-bounded HTTP client.
func New(logger *slog.Logger) *Inliner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inliner{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger: logger,
	}
}

// Images returns all <img> src URLs in first-occurrence order. Duplicate
// URLs appear once per occurrence; each occurrence is fetched independently.
func Images(htmlText string) []string {
	matches := imgSrcPattern.FindAllStringSubmatch(htmlText, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, m[1])
	}
	return urls
}

// InlineImages fetches every <img> URL in the HTML and rewrites each
// occurrence in place as a base64 data URI, in extraction order. A failed
// fetch drops the image: its occurrence is replaced with an empty string,
// leaving the <img> tag with an empty src. Errors are swallowed; there are
// no retries.
func (i *Inliner) InlineImages(htmlText string) string {
	for _, u := range Images(htmlText) {
		htmlText = strings.Replace(htmlText, u, i.fetchDataURI(u), 1)
	}
	return htmlText
}

// fetchDataURI performs an HTTP GET for the URL and encodes the response as
// a data URI. Returns "" on any failure.
func (i *Inliner) fetchDataURI(rawURL string) string {
	resp, err := i.client.Get(rawURL)
	if err != nil {
		i.logger.Warn("dropping image", slog.String("url", rawURL), logging.Err(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		i.logger.Warn("dropping image",
			slog.String("url", rawURL), slog.Int("status_code", resp.StatusCode))
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageSize))
	if err != nil {
		i.logger.Warn("dropping image", slog.String("url", rawURL), logging.Err(err))
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if contentType == "" {
		contentType = "image/png"
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// PrepareBody returns the HTML document to write for a message: the HTML
// body as-is, the plain-text body wrapped in a minimal preformatted shell,
// or a placeholder page when the message has neither.
func PrepareBody(htmlBody, textBody string) string {
	if htmlBody != "" {
		return htmlBody
	}
	if textBody != "" {
		return "<html><body><pre>" + html.EscapeString(textBody) + "</pre></body></html>"
	}
	return "<html><body><p>This message has no content.</p></body></html>"
}
