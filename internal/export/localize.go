package export

import (
	"regexp"
	"strings"
)

var (
	// Already relative (./, ../) or rooted at papers/ or presentations/.
	localAsset = regexp.MustCompile(`(?i)^(?:\.{1,2}/|/?(?:papers|presentations)/)`)
	// http(s)://host[/commit]/(papers|presentations)/rest
	mirroredAsset = regexp.MustCompile(`(?i)^https?://[^/]+/(?:commit/)?(papers|presentations)/(.+)$`)
)

// LocalizeAssetURL rewrites links to site-hosted PDFs and slides into
// site-relative paths, so links work regardless of which mirror served the
// data. Other URLs are returned unchanged. The rewrite is idempotent.
func LocalizeAssetURL(u string) string {
	if u == "" || localAsset.MatchString(u) {
		return u
	}
	if m := mirroredAsset.FindStringSubmatch(u); m != nil {
		return strings.ToLower(m[1]) + "/" + m[2]
	}
	return u
}
