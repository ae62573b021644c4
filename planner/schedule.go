package planner

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
)

// DefaultDepartureLimit bounds next-departure lists when the caller does
// not ask for a specific count.
const DefaultDepartureLimit = 5

// Timetable facts not present in the feed, rendered as fixed strings the
// way the operator publishes them.
const (
	operatingHours    = "5:30 AM - 11:30 PM"
	peakHours         = "8:00 AM - 11:00 AM, 5:00 PM - 8:00 PM"
	serviceFrequency  = "Every 3-5 minutes during peak hours"
	typicalTripLength = "20-45 minutes"
)

const routeScheduleTripLimit = 3

// Departure is one upcoming train at a station.
type Departure struct {
	Line      string `json:"line"`
	Direction string `json:"direction"`
	Arrival   string `json:"arrival_time"`
}

// StationSchedule lists the upcoming departures at one station.
type StationSchedule struct {
	Station        string      `json:"station"`
	CurrentTime    string      `json:"current_time"`
	NextTrains     []Departure `json:"next_trains"`
	OperatingHours string      `json:"operating_hours"`
	PeakHours      string      `json:"peak_hours"`
}

// RouteScheduleEntry is one concrete trip between two stations.
type RouteScheduleEntry struct {
	Line      string `json:"line"`
	LineName  string `json:"line_name"`
	Departure string `json:"departure_time"`
	Arrival   string `json:"arrival_time"`
	Duration  string `json:"duration"`
}

// RouteSchedule lists concrete trips between two stations.
type RouteSchedule struct {
	From              string               `json:"from"`
	To                string               `json:"to"`
	Trips             []RouteScheduleEntry `json:"trips"`
	EstimatedDuration string               `json:"estimated_duration"`
	Frequency         string               `json:"frequency"`
}

// ScheduleService answers timetable queries against the loaded feed.
type ScheduleService struct {
	store *gtfs.FeedStore
}

// NewScheduleService builds a schedule service over the feed.
func NewScheduleService(store *gtfs.FeedStore) *ScheduleService {
	return &ScheduleService{store: store}
}

// NextDepartures lists up to limit departures at the named station whose
// arrival time of day is strictly later than at, ascending. The list does
// not wrap past midnight: late-night queries can legitimately return
// nothing for today.
func (s *ScheduleService) NextDepartures(stationName string, at gtfs.TimeOfDay, limit int) ([]Departure, error) {
	stops := s.store.StopsMatching(stationName)
	if len(stops) == 0 {
		return nil, &StationNotFoundError{Name: stationName}
	}
	if limit <= 0 {
		limit = DefaultDepartureLimit
	}

	type timed struct {
		dep Departure
		at  int
	}
	var upcoming []timed
	for _, st := range s.store.StopTimesForStop(stops[0].ID) {
		if st.Arrival.SecondsOfDay() <= at.SecondsOfDay() {
			continue
		}
		trip, ok := s.store.TripByID(st.TripID)
		if !ok {
			continue
		}
		route, _ := s.store.RouteByID(trip.RouteID)
		upcoming = append(upcoming, timed{
			dep: Departure{
				Line:      route.ShortName,
				Direction: trip.Headsign,
				Arrival:   st.Arrival.Clock(),
			},
			at: st.Arrival.SecondsOfDay(),
		})
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].at < upcoming[j].at })
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	deps := make([]Departure, len(upcoming))
	for i, u := range upcoming {
		deps[i] = u.dep
	}
	return deps, nil
}

// StationSchedule bundles the next departures with the station's
// operating information.
func (s *ScheduleService) StationSchedule(stationName string, at gtfs.TimeOfDay) (StationSchedule, error) {
	stops := s.store.StopsMatching(stationName)
	if len(stops) == 0 {
		return StationSchedule{}, &StationNotFoundError{Name: stationName}
	}
	next, err := s.NextDepartures(stationName, at, DefaultDepartureLimit)
	if err != nil {
		return StationSchedule{}, err
	}
	return StationSchedule{
		Station:        stops[0].Name,
		CurrentTime:    at.Clock(),
		NextTrains:     next,
		OperatingHours: operatingHours,
		PeakHours:      peakHours,
	}, nil
}

// RouteSchedule lists trips that serve both stations, with departure at
// from and arrival at to.
func (s *ScheduleService) RouteSchedule(fromName, toName string) (RouteSchedule, error) {
	fromStops := s.store.StopsMatching(fromName)
	if len(fromStops) == 0 {
		return RouteSchedule{}, &StationNotFoundError{Name: fromName}
	}
	toStops := s.store.StopsMatching(toName)
	if len(toStops) == 0 {
		return RouteSchedule{}, &StationNotFoundError{Name: toName}
	}
	from, to := fromStops[0], toStops[0]

	res := RouteSchedule{
		From:              from.Name,
		To:                to.Name,
		EstimatedDuration: typicalTripLength,
		Frequency:         serviceFrequency,
	}
	for _, st := range s.store.StopTimesForStop(from.ID) {
		var arrival gtfs.TimeOfDay
		found := false
		for _, other := range s.store.StopTimesForTrip(st.TripID) {
			if other.StopID == to.ID {
				arrival = other.Arrival
				found = true
				break
			}
		}
		if !found {
			continue
		}
		trip, ok := s.store.TripByID(st.TripID)
		if !ok {
			continue
		}
		route, _ := s.store.RouteByID(trip.RouteID)
		res.Trips = append(res.Trips, RouteScheduleEntry{
			Line:      route.ShortName,
			LineName:  route.LongName,
			Departure: st.Departure.String(),
			Arrival:   arrival.String(),
			Duration:  formatDuration(gtfs.DurationMinutes(st.Departure, arrival)),
		})
		if len(res.Trips) == routeScheduleTripLimit {
			break
		}
	}
	return res, nil
}

func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
