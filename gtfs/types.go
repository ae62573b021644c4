package gtfs

// Placeholders applied when the feed omits an optional column.
const (
	DefaultStopDesc = "Delhi Metro Station"
	DefaultHeadsign = "Unknown"
)

// Stop is a physical station or platform. Multiple stops may share a name
// prefix (interchange platforms); the id is the join key, never the name.
type Stop struct {
	ID   string
	Name string
	Code string
	Desc string
	Lat  float64
	Lon  float64
}

// Route is one metro line, identified by a short code and a long name.
type Route struct {
	ID        string
	ShortName string
	LongName  string
	Desc      string
}

// Trip is a single scheduled run of a route.
type Trip struct {
	ID        string
	RouteID   string
	ServiceID string
	Headsign  string
}

// StopTime records when a trip is present at a stop. Seq orders the stops
// a trip visits.
type StopTime struct {
	TripID    string
	StopID    string
	Seq       int
	Arrival   TimeOfDay
	Departure TimeOfDay
}

// Calendar records which weekdays a service pattern runs. Days is indexed
// by time.Weekday (Sunday = 0).
type Calendar struct {
	ServiceID string
	Days      [7]bool
}
