package reposync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// DeriveID computes a deterministic repository identifier from a git URL
// (spec §4.3, §6.2, §8 invariant 7): same URL always yields the same id,
// different URLs (after normalization) always yield different ids with
// overwhelming probability.
//
// Normalization: lowercase scheme and host, strip trailing ".git", strip
// embedded auth (user:pass@host). The id itself is a short, filesystem-safe
// slug derived from the host and path, suffixed with a hash of the full
// normalized URL to keep collisions negligible while staying readable.
func DeriveID(rawURL string) (string, error) {
	normalized, err := normalizeURL(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidURL, rawURL, err)
	}

	sum := sha256.Sum256([]byte(normalized))
	hash := hex.EncodeToString(sum[:])[:12]

	slug := slugify(normalized)
	if slug == "" {
		return hash, nil
	}
	return slug + "-" + hash, nil
}

// normalizeURL lowercases scheme/host, strips trailing ".git", and strips
// embedded auth from a well-formed git URL.
func normalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("empty url")
	}

	// scp-style URLs (git@host:path) have no scheme; treat host:path directly.
	if !strings.Contains(trimmed, "://") {
		parts := strings.SplitN(trimmed, "@", 2)
		hostPath := parts[len(parts)-1]
		hostPath = strings.Replace(hostPath, ":", "/", 1)
		return "ssh://" + strings.ToLower(strings.TrimSuffix(hostPath, ".git")), nil
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host")
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	path := strings.TrimSuffix(u.Path, ".git")
	path = strings.TrimSuffix(path, "/")

	return fmt.Sprintf("%s://%s%s", scheme, host, path), nil
}

var slugUnsafe = strings.NewReplacer(
	"://", "-", "/", "-", ".", "-", "@", "-", ":", "-", "_", "-",
)

// slugify turns a normalized URL into a short, lowercase, hyphenated,
// filesystem-safe prefix.
func slugify(normalized string) string {
	s := slugUnsafe.Replace(normalized)
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 48 {
		slug = slug[:48]
	}
	return slug
}
