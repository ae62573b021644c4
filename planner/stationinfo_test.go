package planner

import (
	"errors"
	"fmt"
	"testing"
)

func newStationInfo(t *testing.T, files map[string]string) *StationInfo {
	t.Helper()
	store := loadFeed(t, files)
	return NewStationInfo(store, BuildStopRoutes(store))
}

func TestStationDetails(t *testing.T) {
	si := newStationInfo(t, networkFeed())

	details, err := si.Details("central sec")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if details.Name != "Central Secretariat" || details.Code != "CS01" {
		t.Errorf("station = %s (%s)", details.Name, details.Code)
	}
	if details.Location.Latitude != 28.6149 || details.Location.Longitude != 77.2123 {
		t.Errorf("location = %+v", details.Location)
	}
	// Served by both the Violet and Yellow lines.
	if len(details.Lines) != 2 || details.Lines[0] != "Violet" || details.Lines[1] != "Yellow" {
		t.Errorf("lines = %v, want [Violet Yellow]", details.Lines)
	}
	if len(details.Connections) != 2 || details.Connections[0].LineName != "Violet Line" {
		t.Errorf("connections = %+v", details.Connections)
	}
	if len(details.Facilities) == 0 {
		t.Error("facilities missing")
	}
	if !details.Accessibility["wheelchair_accessible"] || !details.Accessibility["elevator"] {
		t.Errorf("accessibility = %v", details.Accessibility)
	}
	if details.FirstTrain == "" || details.LastTrain == "" || details.OperatingHours == "" {
		t.Error("operating information missing")
	}
}

func TestStationDetails_FacilityHeuristics(t *testing.T) {
	si := newStationInfo(t, networkFeed())

	details, err := si.Details("Airport")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	found := false
	for _, f := range details.Facilities {
		if f == "Airport Shuttle" {
			found = true
		}
	}
	if !found {
		t.Errorf("facilities = %v, want Airport Shuttle included", details.Facilities)
	}
}

func TestStationDetails_NotFound(t *testing.T) {
	si := newStationInfo(t, networkFeed())
	_, err := si.Details("Gotham")
	var notFound *StationNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want *StationNotFoundError", err)
	}
}

func TestNearby(t *testing.T) {
	si := newStationInfo(t, networkFeed())

	// Central Secretariat is just over 2 km from Rajiv Chowk and Kashmere
	// Gate is just under 4 km; everything else is farther out.
	nearby, err := si.Nearby("Rajiv Chowk", 4.5)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(nearby) != 2 {
		t.Fatalf("nearby = %+v, want 2 stations", nearby)
	}
	if nearby[0].Name != "Central Secretariat" || nearby[1].Name != "Kashmere Gate" {
		t.Errorf("order = %s, %s, want closest first", nearby[0].Name, nearby[1].Name)
	}
	if nearby[0].DistanceKM <= 0 || nearby[0].DistanceKM >= nearby[1].DistanceKM {
		t.Errorf("distances = %.2f, %.2f", nearby[0].DistanceKM, nearby[1].DistanceKM)
	}
	if len(nearby[0].Lines) == 0 {
		t.Error("nearby station lines missing")
	}
}

func TestNearby_DefaultRadiusExcludesDistantStations(t *testing.T) {
	si := newStationInfo(t, networkFeed())
	nearby, err := si.Nearby("Kashmere Gate", 0)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	// Nothing in the network is within the 2 km walking radius.
	if len(nearby) != 0 {
		t.Errorf("nearby = %+v, want none", nearby)
	}
}

func TestNearby_CapsResultCount(t *testing.T) {
	// A tight cluster of seven stations around a center stop.
	stops := "stop_id,stop_name,stop_code,stop_lat,stop_lon\nC,Center,C00,28.6000,77.2000\n"
	stopTimes := "trip_id,stop_id,stop_sequence,arrival_time,departure_time\nT1,C,1,08:00:00,08:00:00\n"
	for i := 1; i <= 6; i++ {
		stops += fmt.Sprintf("N%d,Neighbor %d,N%02d,%.4f,77.2000\n", i, i, i, 28.6000+0.001*float64(i))
		stopTimes += fmt.Sprintf("T1,N%d,%d,08:0%d:00,08:0%d:00\n", i, i+1, i, i)
	}
	files := map[string]string{
		"stops.txt":      stops,
		"routes.txt":     "route_id,route_short_name,route_long_name\nR1,Red,Red Line\n",
		"trips.txt":      "trip_id,route_id,service_id\nT1,R1,WK\n",
		"stop_times.txt": stopTimes,
	}
	si := newStationInfo(t, files)

	nearby, err := si.Nearby("Center", 2.0)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(nearby) != 5 {
		t.Fatalf("nearby = %d stations, want capped at 5", len(nearby))
	}
	if nearby[0].Name != "Neighbor 1" || nearby[4].Name != "Neighbor 5" {
		t.Errorf("order = %s ... %s, want closest five", nearby[0].Name, nearby[4].Name)
	}
}
