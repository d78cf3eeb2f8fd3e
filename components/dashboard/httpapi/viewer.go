package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// Headers read by ViewerFromRequest when no viewer is stored on the context.
const (
	HeaderViewerID    = "X-Viewer-ID"
	HeaderViewerRoles = "X-Viewer-Roles"
)

// ViewerResolver extracts the viewer of a request.
type ViewerResolver func(*http.Request) dashboard.ViewerContext

// ViewerFromRequest prefers a viewer stored by authentication middleware
// (dashboard.ContextWithViewer) and falls back to the X-Viewer-* headers.
// The locale comes from the locale query parameter or Accept-Language.
func ViewerFromRequest(r *http.Request) dashboard.ViewerContext {
	viewer, ok := dashboard.ViewerFromContext(r.Context())
	if !ok {
		viewer.UserID = strings.TrimSpace(r.Header.Get(HeaderViewerID))
		viewer.Roles = SplitRoles(r.Header.Get(HeaderViewerRoles))
	}
	if viewer.Locale == "" {
		viewer.Locale = r.URL.Query().Get("locale")
	}
	if viewer.Locale == "" {
		viewer.Locale = PreferredLanguage(r.Header.Get("Accept-Language"))
	}
	return viewer
}

// SplitRoles parses a comma separated role list.
func SplitRoles(raw string) []string {
	var roles []string
	for _, role := range strings.Split(raw, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// PreferredLanguage returns the highest weighted tag of an Accept-Language
// header, or "" when the header is empty or malformed.
func PreferredLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
