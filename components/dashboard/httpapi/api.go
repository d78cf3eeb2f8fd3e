package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-commerce-dashboard/components/dashboard"
	"github.com/goliatone/go-commerce-dashboard/components/dashboard/commands"
)

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	API        Executor
	Controller *dashboard.Controller
	Viewer     ViewerResolver
}

func (h *Handlers) viewer(r *http.Request) dashboard.ViewerContext {
	if h.Viewer != nil {
		return h.Viewer(r)
	}
	return ViewerFromRequest(r)
}

// HandleDashboard renders the HTML dashboard.
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if h.Controller == nil {
		WriteError(w, errNotConfigured)
		return
	}
	var buf bytes.Buffer
	if err := h.Controller.RenderTemplate(r.Context(), h.viewer(r), &buf); err != nil {
		WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// HandleLayout returns the resolved layout as JSON.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	if h.Controller == nil {
		WriteError(w, errNotConfigured)
		return
	}
	payload, err := h.Controller.LayoutPayload(r.Context(), h.viewer(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// HandleListCollection serves one page of a collection.
func (h *Handlers) HandleListCollection(w http.ResponseWriter, r *http.Request, collection string) {
	query, err := ParseListValues(r.URL.Query())
	if err != nil {
		WriteError(w, err)
		return
	}
	page, err := h.API.ListCollection(r.Context(), dashboard.ListRequest{
		Collection: collection,
		Query:      query,
		Viewer:     h.viewer(r),
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandlePreferences returns the viewer's stored preferences.
func (h *Handlers) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.API.Preferences(r.Context(), h.viewer(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// HandleSavePreferences stores the viewer's preferences.
func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SavePreferencesInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	if err := h.API.SavePreferences(r.Context(), payload); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleReorderWidgets stores a widget order for one area.
func (h *Handlers) HandleReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var payload commands.ReorderWidgetsInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	if err := h.API.Reorder(r.Context(), payload); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// HandleToggleWidget hides or shows a widget.
func (h *Handlers) HandleToggleWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var payload commands.ToggleWidgetInput
	if !decode(w, r, &payload) {
		return
	}
	payload.Viewer = h.viewer(r)
	payload.WidgetID = widgetID
	if err := h.API.Toggle(r.Context(), payload); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "saved", "hidden": payload.Hidden})
}

// HandleRefresh announces a collection change to refresh subscribers.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshCollectionInput
	if !decode(w, r, &payload) {
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// StatusFor maps dashboard errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownCollection):
		return http.StatusNotFound
	case dashboard.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes {"error": ...} with the status from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
