package httpapi

import (
	"net/http"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
)

// NewMux mounts the handlers on a standard library mux under base
// (default "/dashboard") for hosts that do not run go-router; the gorouter
// package registers the same endpoints on a go-router app. It also serves
// the SSE stream at base+"/events". broadcast may be nil.
func NewMux(h *Handlers, broadcast *dashboard.BroadcastHook, base string) *http.ServeMux {
	if base == "" {
		base = "/dashboard"
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+base, h.HandleDashboard)
	mux.HandleFunc("GET "+base+"/_layout", h.HandleLayout)
	mux.HandleFunc("GET "+base+"/collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleListCollection(w, r, r.PathValue("name"))
	})
	mux.HandleFunc("GET "+base+"/preferences", h.HandlePreferences)
	mux.HandleFunc("POST "+base+"/preferences", h.HandleSavePreferences)
	mux.HandleFunc("POST "+base+"/widgets/reorder", h.HandleReorderWidgets)
	mux.HandleFunc("POST "+base+"/widgets/{id}/visibility", func(w http.ResponseWriter, r *http.Request) {
		h.HandleToggleWidget(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST "+base+"/refresh", h.HandleRefresh)
	if broadcast != nil {
		mux.HandleFunc("GET "+base+"/ws", broadcast.ServeWebSocket)
		mux.HandleFunc("GET "+base+"/events", broadcast.ServeSSE)
	}
	return mux
}
