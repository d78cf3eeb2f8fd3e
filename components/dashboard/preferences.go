package dashboard

import (
	"context"
	"sync"
)

// MaxPageSize bounds the page size a viewer may store.
const MaxPageSize = 100

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]ViewerPreferences
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]ViewerPreferences),
	}
}

// Preferences returns stored preferences or empty defaults.
func (s *InMemoryPreferenceStore) Preferences(_ context.Context, viewer ViewerContext) (ViewerPreferences, error) {
	if viewer.UserID == "" {
		return normalizePreferences(ViewerPreferences{}), nil
	}
	s.mu.RLock()
	prefs, ok := s.data[viewer.UserID]
	s.mu.RUnlock()
	if !ok {
		return normalizePreferences(ViewerPreferences{}), nil
	}
	return clonePreferences(prefs), nil
}

// SavePreferences persists preferences for a viewer.
func (s *InMemoryPreferenceStore) SavePreferences(_ context.Context, viewer ViewerContext, prefs ViewerPreferences) error {
	if viewer.UserID == "" {
		return errMissingViewer
	}
	prefs = clonePreferences(normalizePreferences(prefs))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viewer.UserID] = prefs
	return nil
}

// normalizePreferences fills nil maps and clamps the page size into
// [0, MaxPageSize]; 0 means "use the service default".
func normalizePreferences(prefs ViewerPreferences) ViewerPreferences {
	if prefs.AreaOrder == nil {
		prefs.AreaOrder = map[string][]string{}
	}
	if prefs.HiddenWidgets == nil {
		prefs.HiddenWidgets = map[string]bool{}
	}
	prefs.PageSize = min(max(prefs.PageSize, 0), MaxPageSize)
	return prefs
}

func clonePreferences(prefs ViewerPreferences) ViewerPreferences {
	out := ViewerPreferences{
		PageSize:      prefs.PageSize,
		HiddenWidgets: make(map[string]bool, len(prefs.HiddenWidgets)),
		AreaOrder:     make(map[string][]string, len(prefs.AreaOrder)),
	}
	for id, hidden := range prefs.HiddenWidgets {
		if hidden {
			out.HiddenWidgets[id] = true
		}
	}
	for area, order := range prefs.AreaOrder {
		out.AreaOrder[area] = append([]string(nil), order...)
	}
	return out
}
