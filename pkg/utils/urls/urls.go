// ABOUTME: URL helpers for dedup keys and source domains
// ABOUTME: Never fails on malformed input; callers get a best-effort value instead

package urls

import (
	"net/url"
	"strings"
)

// CanonicalKey returns the dedup key for a result URL.
// Scheme and host are lowercased, the fragment is dropped and a trailing
// slash on the path is trimmed. Unparsable input is keyed by its trimmed text.
func CanonicalKey(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	} else {
		u.Path = ""
		u.RawPath = ""
	}

	return u.String()
}

// Domain extracts the hostname of raw without a leading "www.".
// The second return value is false when raw has no usable host.
func Domain(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}

	return strings.TrimPrefix(host, "www."), true
}

// NormalizeDomain turns user supplied site entries ("https://www.lemonde.fr/tech",
// "LeMonde.fr") into a bare domain ("lemonde.fr")
func NormalizeDomain(entry string) string {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if entry == "" {
		return ""
	}

	if !strings.Contains(entry, "://") {
		entry = "https://" + entry
	}

	if domain, ok := Domain(entry); ok {
		return domain
	}
	return ""
}
