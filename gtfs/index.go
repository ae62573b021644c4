package gtfs

import "strings"

// FeedStore holds the loaded feed in memory for fast lookups. It is
// immutable once loaded and safe for unsynchronized concurrent reads;
// accessors returning slices hand out internal data that callers must
// treat as read-only.
type FeedStore struct {
	stops       []Stop // feed file order; the resolver's iteration order
	stopIdx     map[string]int
	routes      map[string]Route
	trips       map[string]Trip
	services    map[string]Calendar
	stopTimes   []StopTime // feed file order
	timesByStop map[string][]StopTime
	timesByTrip map[string][]StopTime // ordered by stop_sequence
}

func newFeedStore() *FeedStore {
	return &FeedStore{
		stopIdx:     map[string]int{},
		routes:      map[string]Route{},
		trips:       map[string]Trip{},
		services:    map[string]Calendar{},
		timesByStop: map[string][]StopTime{},
		timesByTrip: map[string][]StopTime{},
	}
}

// Stops returns all stops in feed file order.
func (s *FeedStore) Stops() []Stop { return s.stops }

// StopNames returns every canonical station name in feed file order.
func (s *FeedStore) StopNames() []string {
	names := make([]string, len(s.stops))
	for i, st := range s.stops {
		names[i] = st.Name
	}
	return names
}

// StopByID fetches a stop by its identifier.
func (s *FeedStore) StopByID(id string) (Stop, bool) {
	i, ok := s.stopIdx[id]
	if !ok {
		return Stop{}, false
	}
	return s.stops[i], true
}

// StopsMatching returns the stops whose name contains the given text,
// case-insensitively, in feed file order.
func (s *FeedStore) StopsMatching(name string) []Stop {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	var out []Stop
	for _, st := range s.stops {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			out = append(out, st)
		}
	}
	return out
}

// RouteByID fetches a route by its identifier.
func (s *FeedStore) RouteByID(id string) (Route, bool) {
	r, ok := s.routes[id]
	return r, ok
}

// TripByID fetches a trip by its identifier.
func (s *FeedStore) TripByID(id string) (Trip, bool) {
	t, ok := s.trips[id]
	return t, ok
}

// ServiceByID fetches a service calendar entry.
func (s *FeedStore) ServiceByID(id string) (Calendar, bool) {
	c, ok := s.services[id]
	return c, ok
}

// StopTimes returns every stop time in feed file order.
func (s *FeedStore) StopTimes() []StopTime { return s.stopTimes }

// StopTimesForStop returns the stop times recorded at a stop.
func (s *FeedStore) StopTimesForStop(stopID string) []StopTime {
	return s.timesByStop[stopID]
}

// StopTimesForTrip returns a trip's stop times ordered by stop_sequence.
func (s *FeedStore) StopTimesForTrip(tripID string) []StopTime {
	return s.timesByTrip[tripID]
}

// Counts reports table sizes, for logging and health reporting.
func (s *FeedStore) Counts() (stops, routes, trips, stopTimes int) {
	return len(s.stops), len(s.routes), len(s.trips), len(s.stopTimes)
}
