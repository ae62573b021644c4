package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
)

// DefaultNearbyRadiusKM bounds the nearby-station search.
const DefaultNearbyRadiusKM = 2.0

const nearbyLimit = 5

// Location is a station coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Connection is one line serving a station.
type Connection struct {
	Line      string `json:"line"`
	LineName  string `json:"line_name"`
	Direction string `json:"direction"`
}

// StationDetails is the full station information result.
type StationDetails struct {
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	Description    string          `json:"description"`
	Location       Location        `json:"location"`
	Lines          []string        `json:"lines"`
	Connections    []Connection    `json:"connections"`
	Facilities     []string        `json:"facilities"`
	Accessibility  map[string]bool `json:"accessibility"`
	OperatingHours string          `json:"operating_hours"`
	FirstTrain     string          `json:"first_train"`
	LastTrain      string          `json:"last_train"`
}

// NearbyStation is a station within walking range of another.
type NearbyStation struct {
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	DistanceKM float64  `json:"distance_km"`
	Lines      []string `json:"lines"`
}

// StationInfo answers station detail queries.
type StationInfo struct {
	store *gtfs.FeedStore
	graph StopRoutes
}

// NewStationInfo builds a station info service sharing the planner's
// adjacency graph.
func NewStationInfo(store *gtfs.FeedStore, graph StopRoutes) *StationInfo {
	return &StationInfo{store: store, graph: graph}
}

// Details returns the station matched first by substring, with its lines
// and connections derived from the feed and facility/accessibility
// heuristics keyed off the name.
func (si *StationInfo) Details(stationName string) (StationDetails, error) {
	stops := si.store.StopsMatching(stationName)
	if len(stops) == 0 {
		return StationDetails{}, &StationNotFoundError{Name: stationName}
	}
	stop := stops[0]
	return StationDetails{
		Name:           stop.Name,
		Code:           stop.Code,
		Description:    stop.Desc,
		Location:       Location{Latitude: stop.Lat, Longitude: stop.Lon},
		Lines:          si.lines(stop.ID),
		Connections:    si.connections(stop.ID),
		Facilities:     facilitiesFor(stop.Name),
		Accessibility:  accessibilityFor(stop.Name),
		OperatingHours: operatingHours,
		FirstTrain:     "5:30 AM",
		LastTrain:      "11:30 PM",
	}, nil
}

// Nearby returns up to five stations within radiusKM of the named one,
// closest first.
func (si *StationInfo) Nearby(stationName string, radiusKM float64) ([]NearbyStation, error) {
	stops := si.store.StopsMatching(stationName)
	if len(stops) == 0 {
		return nil, &StationNotFoundError{Name: stationName}
	}
	if radiusKM <= 0 {
		radiusKM = DefaultNearbyRadiusKM
	}
	target := stops[0]

	var nearby []NearbyStation
	for _, stop := range si.store.Stops() {
		if stop.ID == target.ID {
			continue
		}
		km := HaversineKM(target.Lat, target.Lon, stop.Lat, stop.Lon)
		if km > radiusKM {
			continue
		}
		nearby = append(nearby, NearbyStation{
			Name:       stop.Name,
			Code:       stop.Code,
			DistanceKM: math.Round(km*100) / 100,
			Lines:      si.lines(stop.ID),
		})
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].DistanceKM < nearby[j].DistanceKM })
	if len(nearby) > nearbyLimit {
		nearby = nearby[:nearbyLimit]
	}
	return nearby, nil
}

func (si *StationInfo) lines(stopID string) []string {
	var lines []string
	for _, routeID := range si.graph.RoutesAt(stopID) {
		if route, ok := si.store.RouteByID(routeID); ok {
			lines = append(lines, route.ShortName)
		}
	}
	return lines
}

func (si *StationInfo) connections(stopID string) []Connection {
	var conns []Connection
	for _, routeID := range si.graph.RoutesAt(stopID) {
		route, ok := si.store.RouteByID(routeID)
		if !ok {
			continue
		}
		conns = append(conns, Connection{
			Line:      route.ShortName,
			LineName:  route.LongName,
			Direction: "Both directions",
		})
	}
	return conns
}

// Facility and accessibility data has no feed source; these heuristics
// stand in for the operator's station database.
func facilitiesFor(name string) []string {
	facilities := []string{
		"Ticket Counter",
		"Smart Card Recharge",
		"Security Check",
		"Platform Display",
		"Public Address System",
		"Drinking Water",
		"Restrooms",
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "airport"):
		facilities = append(facilities, "Airport Shuttle", "Baggage Handling")
	case strings.Contains(lower, "mall"), strings.Contains(lower, "market"):
		facilities = append(facilities, "Shopping Center Access", "Food Court")
	case strings.Contains(lower, "hospital"):
		facilities = append(facilities, "Medical Emergency", "Ambulance Access")
	}
	return facilities
}

func accessibilityFor(name string) map[string]bool {
	access := map[string]bool{
		"wheelchair_accessible": true,
		"elevator":              true,
		"escalator":             true,
		"ramp_access":           true,
		"tactile_path":          true,
		"audio_signals":         true,
		"visual_signals":        true,
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "old") || strings.Contains(lower, "heritage") {
		access["wheelchair_accessible"] = false
		access["elevator"] = false
	}
	return access
}
