package portal

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
)

const readWordsPerMinute = 200

// EstimateReadTime renders a display read time from the content word count,
// rounded up at 200 words per minute.
func EstimateReadTime(content string) string {
	words := len(strings.Fields(content))

	minutes := int(math.Ceil(float64(words) / float64(readWordsPerMinute)))
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d min read", minutes)
}

func FilterNonEmpty(values []string) []string {
	var out []string

	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}

	return out
}

func SanitiseURL(u string) string {
	trimmed := strings.TrimSpace(u)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)

	if orig, err := url.Parse(trimmed); err == nil {
		switch scheme := strings.ToLower(orig.Scheme); scheme {
		case "":
		// add https later
		case "http", "https":
		// keep going
		default:
			return ""
		}
	}

	candidate := trimmed

	switch {
	case strings.HasPrefix(lower, "https://"):
		// already https
	case strings.HasPrefix(lower, "http://"):
		candidate = "https://" + trimmed[len("http://"):]
	default:
		candidate = "https://" + trimmed
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return ""
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return ""
	}

	if hostname != "localhost" && !strings.Contains(hostname, ".") && net.ParseIP(hostname) == nil {
		return ""
	}

	parsed.User = nil
	parsed.Scheme = "https"

	// Remove fragments to keep canonical representation consistent.
	parsed.Fragment = ""

	return template.HTMLEscapeString(parsed.String())
}

// ParseClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the socket address.
func ParseClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}

	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")

		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}

	return host
}

func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}

	if err := c.Close(); err != nil {
		slog.Error("failed to close resource", "err", err)
	}
}
