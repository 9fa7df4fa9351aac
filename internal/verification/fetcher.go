package verification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// maxLinkContentChars bounds the text representation sent to the oracle.
const maxLinkContentChars = 3000

// defaultLinkFetchTimeout bounds each individual fetch so one unreachable
// link cannot stall the whole request.
const defaultLinkFetchTimeout = 10 * time.Second

// FetchedLink is one link's fetch outcome. Inaccessible links carry no
// content and are excluded from the relevance average.
type FetchedLink struct {
	URL        string
	Accessible bool
	Content    string
}

// LinkFetcher retrieves submitted links and reduces each response to a
// truncated text representation suitable for relevance scoring.
type LinkFetcher struct {
	client  *http.Client
	timeout time.Duration
}

func NewLinkFetcher(timeout time.Duration) *LinkFetcher {
	if timeout <= 0 {
		timeout = defaultLinkFetchTimeout
	}
	return &LinkFetcher{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// FetchAll fetches every link concurrently. Results keep submission order;
// per-link failures are recorded on the result, never returned as errors.
func (f *LinkFetcher) FetchAll(ctx context.Context, links []string) []FetchedLink {
	results := make([]FetchedLink, len(links))

	g, ctx := errgroup.WithContext(ctx)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			results[i] = f.fetch(ctx, link)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (f *LinkFetcher) fetch(ctx context.Context, link string) FetchedLink {
	result := FetchedLink{URL: link}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return result
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return result
	}

	result.Accessible = true
	result.Content = truncate(extractText(resp.Header.Get("Content-Type"), resp.StatusCode, body), maxLinkContentChars)
	return result
}

// extractText reduces a response body to plain text by content type:
// stripped HTML text, JSON passthrough, or a type/status placeholder for
// anything else.
func extractText(contentType string, status int, body []byte) string {
	switch {
	case strings.Contains(contentType, "text/html"):
		return stripHTML(string(body))
	case strings.Contains(contentType, "application/json"), strings.Contains(contentType, "text/plain"):
		return string(body)
	default:
		return fmt.Sprintf("[%s: %d]", contentType, status)
	}
}

// stripHTML removes tags, script and style bodies, and collapses whitespace.
func stripHTML(html string) string {
	var (
		b       strings.Builder
		inTag   bool
		skipTag string
	)

	lower := strings.ToLower(html)
	for i := 0; i < len(html); i++ {
		c := html[i]
		switch {
		case c == '<':
			inTag = true
			if skipTag == "" {
				switch {
				case strings.HasPrefix(lower[i:], "<script"):
					skipTag = "</script>"
				case strings.HasPrefix(lower[i:], "<style"):
					skipTag = "</style>"
				}
			} else if strings.HasPrefix(lower[i:], skipTag) {
				i += len(skipTag) - 1
				skipTag = ""
				inTag = false
				continue
			}
		case c == '>':
			inTag = false
		case !inTag && skipTag == "":
			b.WriteByte(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
