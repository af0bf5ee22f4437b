package policy

import (
	"net/url"
	"strings"
)

// NormalizeDomain reduces user input like "https://www.TikTok.com/foo" to
// "tiktok.com".
func NormalizeDomain(input string) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(input))
	if raw == "" {
		return "", invalidf("domain must not be empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", invalidf("domain %q cannot be parsed", input)
	}

	host := strings.TrimSuffix(u.Hostname(), ".")
	host = strings.TrimPrefix(host, "www.")
	if host == "" || !strings.Contains(host, ".") || strings.ContainsAny(host, " _") {
		return "", invalidf("domain %q is not a host name", input)
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "", invalidf("domain %q is not a host name", input)
		}
	}
	return host, nil
}
