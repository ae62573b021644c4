package metroassist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/metro-assist/config"
	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
	"github.com/theoremus-urban-solutions/metro-assist/resolver"
)

// testFeed is a small network: the Yellow line runs Kashmere Gate through
// Hauz Khas, the Violet line branches off at Central Secretariat, and the
// Airport Express is isolated.
var testFeed = map[string]string{
	"stops.txt": "stop_id,stop_name,stop_code,stop_lat,stop_lon\n" +
		"S1,Kashmere Gate,KG01,28.6675,77.2273\n" +
		"S2,Rajiv Chowk,RJ01,28.6328,77.2197\n" +
		"S3,Central Secretariat,CS01,28.6149,77.2123\n" +
		"S4,Hauz Khas,HK01,28.5433,77.2066\n" +
		"S5,Lajpat Nagar,LN01,28.5700,77.2373\n" +
		"S6,Airport,AP01,28.5562,77.1000\n" +
		"S7,Aerocity,AC01,28.5486,77.1210\n",
	"routes.txt": "route_id,route_short_name,route_long_name\n" +
		"YL,Yellow,Yellow Line\n" +
		"VL,Violet,Violet Line\n" +
		"OR,Orange,Airport Express\n",
	"trips.txt": "trip_id,route_id,service_id,trip_headsign\n" +
		"T1,YL,WK,HUDA City Centre\n" +
		"T2,VL,WK,Badarpur\n" +
		"T3,OR,WK,New Delhi\n",
	"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
		"T1,S1,1,08:00:00,08:00:00\n" +
		"T1,S2,2,08:10:00,08:10:00\n" +
		"T1,S3,3,08:15:00,08:15:00\n" +
		"T1,S4,4,08:30:00,08:30:00\n" +
		"T2,S3,1,09:00:00,09:00:00\n" +
		"T2,S5,2,09:12:00,09:12:00\n" +
		"T3,S6,1,10:00:00,10:00:00\n" +
		"T3,S7,2,10:06:00,10:06:00\n",
}

func newTestAssistant(t *testing.T) *Assistant {
	t.Helper()
	dir := t.TempDir()
	for name, content := range testFeed {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	store, err := gtfs.LoadFromDir(dir)
	if err != nil {
		t.Fatalf("load feed: %v", err)
	}
	return New(store, config.AppConfig{})
}

func TestPlanJourney(t *testing.T) {
	a := newTestAssistant(t)

	plan, err := a.PlanJourney("how do I get from kashmere gate to hauz khas")
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	if plan.From != "Kashmere Gate" || plan.To != "Hauz Khas" {
		t.Errorf("endpoints = %s → %s", plan.From, plan.To)
	}
	if len(plan.Routes.Options) == 0 {
		t.Fatal("no route options")
	}
	opt := plan.Routes.Options[0]
	if opt.Line != "Yellow" || opt.DurationMin != 30 {
		t.Errorf("best option = %+v, want the 30-minute Yellow line trip", opt)
	}
	if plan.Routes.Fare == nil || plan.Routes.Fare.BaseFare != 40 {
		t.Errorf("fare = %+v, want base 40", plan.Routes.Fare)
	}
	if len(plan.Schedule.Trips) == 0 || plan.Schedule.Trips[0].Departure != "08:00:00" {
		t.Errorf("schedule = %+v", plan.Schedule)
	}
}

func TestPlanJourney_FuzzyStationNames(t *testing.T) {
	a := newTestAssistant(t)

	plan, err := a.PlanJourney("from airpot to aerocity please")
	if err != nil {
		t.Fatalf("PlanJourney: %v", err)
	}
	got := map[string]bool{plan.From: true, plan.To: true}
	if !got["Airport"] || !got["Aerocity"] {
		t.Errorf("endpoints = %s → %s, want Airport and Aerocity", plan.From, plan.To)
	}
}

func TestPlanJourney_Ambiguous(t *testing.T) {
	a := newTestAssistant(t)

	_, err := a.PlanJourney("when is the next train")
	var ambiguous *resolver.AmbiguousQueryError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("err = %v, want *AmbiguousQueryError", err)
	}
	if len(ambiguous.Candidates) != 0 {
		t.Errorf("candidates = %v, want none", ambiguous.Candidates)
	}
}

func TestAssistant_ConfiguredLimits(t *testing.T) {
	dir := t.TempDir()
	for name, content := range testFeed {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := gtfs.LoadFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.AppConfig{}
	cfg.Planner.MaxOptions = 1
	a := New(store, cfg)

	res, err := a.FindRoutes("Kashmere Gate", "Rajiv Chowk")
	if err != nil {
		t.Fatalf("FindRoutes: %v", err)
	}
	if len(res.Options) > 1 {
		t.Errorf("options = %d, want configured cap of 1", len(res.Options))
	}
}

func TestAssistant_StationQueries(t *testing.T) {
	a := newTestAssistant(t)

	names := a.StationNames()
	if len(names) != 7 || names[0] != "Kashmere Gate" {
		t.Errorf("station names = %v", names)
	}

	details, err := a.StationDetails("Central Secretariat")
	if err != nil {
		t.Fatalf("StationDetails: %v", err)
	}
	if len(details.Lines) != 2 {
		t.Errorf("lines = %v, want the Violet and Yellow interchange", details.Lines)
	}

	nearby, err := a.NearbyStations("Rajiv Chowk", 4.5)
	if err != nil {
		t.Fatalf("NearbyStations: %v", err)
	}
	if len(nearby) != 2 {
		t.Errorf("nearby = %+v, want 2 stations", nearby)
	}

	at, err := gtfs.ParseTimeOfDay("08:05:00")
	if err != nil {
		t.Fatal(err)
	}
	deps, err := a.NextDepartures("Rajiv Chowk", at, 0)
	if err != nil {
		t.Fatalf("NextDepartures: %v", err)
	}
	if len(deps) != 1 || deps[0].Arrival != "08:10" {
		t.Errorf("departures = %+v, want the 08:10 train", deps)
	}

	stops, routes, trips, stopTimes := a.FeedCounts()
	if stops != 7 || routes != 3 || trips != 3 || stopTimes != 8 {
		t.Errorf("counts = %d/%d/%d/%d", stops, routes, trips, stopTimes)
	}
}
