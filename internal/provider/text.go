package provider

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html"
)

const defaultUserAgent = "coinpulse/1.0 (+https://github.com/coinpulse/coinpulse)"

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// sanitizeText collapses whitespace and cuts the result to maxLen runes.
func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && utf8.RuneCountInString(in) > maxLen {
		runes := []rune(in)
		in = strings.TrimSpace(string(runes[:maxLen]))
	}
	return in
}

// stripHTML returns the text content of an HTML fragment. Feed descriptions
// frequently carry markup or escaped entities; plain text passes through.
func stripHTML(in string) string {
	if strings.TrimSpace(in) == "" {
		return ""
	}
	if !strings.ContainsAny(in, "<&") {
		return in
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(in))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func parseFeedTime(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
