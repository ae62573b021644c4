package planner

import (
	"sort"

	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
)

// StopRoutes maps a stop to the set of routes whose trips call there,
// derived by joining stop_times to trips. Two stops intersecting here
// share a line; that is necessary but not sufficient for a usable direct
// trip, since direction and time of day are ignored.
type StopRoutes map[string]map[string]struct{}

// BuildStopRoutes derives the stop → routes adjacency from the feed.
func BuildStopRoutes(store *gtfs.FeedStore) StopRoutes {
	g := StopRoutes{}
	for _, st := range store.StopTimes() {
		trip, ok := store.TripByID(st.TripID)
		if !ok {
			continue
		}
		set := g[st.StopID]
		if set == nil {
			set = map[string]struct{}{}
			g[st.StopID] = set
		}
		set[trip.RouteID] = struct{}{}
	}
	return g
}

// RoutesAt returns the sorted route ids serving a stop.
func (g StopRoutes) RoutesAt(stopID string) []string {
	ids := make([]string, 0, len(g[stopID]))
	for id := range g[stopID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Common returns the sorted route ids serving both stops.
func (g StopRoutes) Common(a, b string) []string {
	var ids []string
	for id := range g[a] {
		if _, ok := g[b][id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Connected reports whether some line serves both stops.
func (g StopRoutes) Connected(a, b string) bool {
	for id := range g[a] {
		if _, ok := g[b][id]; ok {
			return true
		}
	}
	return false
}
