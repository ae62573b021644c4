// Package metroassist is the query core of the metro voice assistant: it
// resolves station names out of free text and answers route, fare,
// schedule and station queries against a static transit feed.
//
// The surrounding conversational system (speech handling, language model,
// session state) consumes the JSON-serializable results these operations
// return. Nothing in this package performs network I/O; the feed is loaded
// once up front and every query is a bounded in-memory computation, safe
// for concurrent use.
package metroassist

import (
	"github.com/theoremus-urban-solutions/metro-assist/config"
	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
	"github.com/theoremus-urban-solutions/metro-assist/planner"
	"github.com/theoremus-urban-solutions/metro-assist/resolver"
)

// Assistant wires the feed store, station resolver and planner into the
// operation surface the conversational layer calls.
type Assistant struct {
	store    *gtfs.FeedStore
	resolver *resolver.Resolver
	planner  *planner.Planner
	schedule *planner.ScheduleService
	stations *planner.StationInfo
}

// JourneyPlan is the combined answer for a free-text journey query.
type JourneyPlan struct {
	Query    string                `json:"query"`
	From     string                `json:"from"`
	To       string                `json:"to"`
	Routes   planner.RouteResult   `json:"routes"`
	Schedule planner.RouteSchedule `json:"schedule"`
}

// New builds an assistant over a fully loaded feed store.
func New(store *gtfs.FeedStore, cfg config.AppConfig) *Assistant {
	p := planner.New(store, planner.Options{
		DirectLimit:         cfg.Planner.DirectLimit,
		InterchangeLimit:    cfg.Planner.InterchangeLimit,
		MaxOptions:          cfg.Planner.MaxOptions,
		InterchangeEstimate: cfg.Planner.InterchangeEstimate,
	})
	return &Assistant{
		store:    store,
		resolver: resolver.New(store.StopNames(), cfg.Resolver.FuzzyThreshold),
		planner:  p,
		schedule: planner.NewScheduleService(store),
		stations: planner.NewStationInfo(store, p.Graph()),
	}
}

// PlanJourney resolves the stations named in free text and assembles the
// route options, fare and schedule for the pair. An unresolvable query
// returns *resolver.AmbiguousQueryError so the caller can ask a follow-up
// question rather than guess endpoints.
func (a *Assistant) PlanJourney(freeText string) (JourneyPlan, error) {
	from, to, err := a.resolver.Resolve(freeText)
	if err != nil {
		return JourneyPlan{}, err
	}
	routes, err := a.planner.FindRoutes(from, to)
	if err != nil {
		return JourneyPlan{}, err
	}
	sched, err := a.schedule.RouteSchedule(from, to)
	if err != nil {
		return JourneyPlan{}, err
	}
	return JourneyPlan{Query: freeText, From: from, To: to, Routes: routes, Schedule: sched}, nil
}

// ResolveStations exposes the resolver for callers that only need the
// (from, to) pair out of free text.
func (a *Assistant) ResolveStations(freeText string) (from, to string, err error) {
	return a.resolver.Resolve(freeText)
}

// FindRoutes finds direct and interchange options between two station
// names, fare included.
func (a *Assistant) FindRoutes(fromName, toName string) (planner.RouteResult, error) {
	return a.planner.FindRoutes(fromName, toName)
}

// CalculateFare computes the fare breakdown for a station pair.
func (a *Assistant) CalculateFare(fromName, toName string) (planner.FareBreakdown, error) {
	return a.planner.CalculateFare(fromName, toName)
}

// NextDepartures lists upcoming departures at a station after the given
// time of day.
func (a *Assistant) NextDepartures(stationName string, at gtfs.TimeOfDay, limit int) ([]planner.Departure, error) {
	return a.schedule.NextDepartures(stationName, at, limit)
}

// StationSchedule returns the departures and operating information for
// one station.
func (a *Assistant) StationSchedule(stationName string, at gtfs.TimeOfDay) (planner.StationSchedule, error) {
	return a.schedule.StationSchedule(stationName, at)
}

// RouteSchedule returns concrete trips between two stations.
func (a *Assistant) RouteSchedule(fromName, toName string) (planner.RouteSchedule, error) {
	return a.schedule.RouteSchedule(fromName, toName)
}

// StationDetails returns the full details for one station.
func (a *Assistant) StationDetails(stationName string) (planner.StationDetails, error) {
	return a.stations.Details(stationName)
}

// NearbyStations lists stations within radiusKM of the named one.
func (a *Assistant) NearbyStations(stationName string, radiusKM float64) ([]planner.NearbyStation, error) {
	return a.stations.Nearby(stationName, radiusKM)
}

// StationNames lists every canonical station name in feed order.
func (a *Assistant) StationNames() []string {
	return a.store.StopNames()
}

// FeedCounts reports loaded table sizes for health reporting.
func (a *Assistant) FeedCounts() (stops, routes, trips, stopTimes int) {
	return a.store.Counts()
}
