package domain

import (
	"net/url"
	"strings"
)

// NormalizeURL prepends https:// to raw when it carries no http scheme.
// Pure string transformation, no reachability or syntax validation.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// ResolveFavicon turns an icon href found on a page into an absolute URL.
// Cases, evaluated in order:
//
//	""              -> {scheme}://{host}/favicon.ico  (no icon link on page)
//	"/path"         -> {scheme}://{host}/path         (root-relative)
//	"path"          -> {scheme}://{host}/path         (bare-relative)
//	"http(s)://..." -> unchanged                      (already absolute)
func ResolveFavicon(page *url.URL, href string) string {
	origin := page.Scheme + "://" + page.Hostname()
	switch {
	case href == "":
		return origin + "/favicon.ico"
	case strings.HasPrefix(href, "/"):
		return origin + href
	case !strings.HasPrefix(href, "http"):
		return origin + "/" + href
	default:
		return href
	}
}
