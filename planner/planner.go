package planner

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
)

// Default planning limits. All are overridable through Options.
const (
	DefaultDirectLimit      = 2
	DefaultInterchangeLimit = 3
	DefaultMaxOptions       = 3
	// DefaultInterchangeEstimate is the placeholder duration in minutes
	// attached to options whose real timing is unknown.
	DefaultInterchangeEstimate = 45
)

// StationNotFoundError reports a name that matched no stop. Recoverable:
// callers render it as a "station not found" result.
type StationNotFoundError struct {
	Name string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("station not found: %q", e.Name)
}

// Options bounds the planner's result sizes. Zero fields take defaults.
type Options struct {
	DirectLimit         int
	InterchangeLimit    int
	MaxOptions          int
	InterchangeEstimate int // minutes
}

func (o Options) withDefaults() Options {
	if o.DirectLimit == 0 {
		o.DirectLimit = DefaultDirectLimit
	}
	if o.InterchangeLimit == 0 {
		o.InterchangeLimit = DefaultInterchangeLimit
	}
	if o.MaxOptions == 0 {
		o.MaxOptions = DefaultMaxOptions
	}
	if o.InterchangeEstimate == 0 {
		o.InterchangeEstimate = DefaultInterchangeEstimate
	}
	return o
}

// Option kinds.
const (
	KindDirect      = "direct"
	KindInterchange = "interchange"
)

// RouteOption is one way to travel between the queried stations.
// Direct options carry concrete trip times when a single trip serves both
// stops; interchange options carry the two lines and the change station,
// with an estimated duration.
type RouteOption struct {
	Kind         string `json:"kind"`
	Line         string `json:"line"`
	LineName     string `json:"line_name"`
	Departure    string `json:"departure,omitempty"`
	Arrival      string `json:"arrival,omitempty"`
	DurationMin  int    `json:"duration_minutes"`
	Estimated    bool   `json:"estimated,omitempty"`
	FromPlatform string `json:"from_platform,omitempty"`
	ToPlatform   string `json:"to_platform,omitempty"`
	Interchange  string `json:"interchange,omitempty"`
	ToLine       string `json:"to_line,omitempty"`
	ToLineName   string `json:"to_line_name,omitempty"`
}

// RouteResult is the structured answer for a route query. Zero options is
// a valid "no route available" outcome, not an error.
type RouteResult struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	Options []RouteOption  `json:"options"`
	Fare    *FareBreakdown `json:"fare,omitempty"`
}

// Planner computes route options over the loaded feed.
type Planner struct {
	store *gtfs.FeedStore
	graph StopRoutes
	opts  Options
}

// New builds a planner. The adjacency graph is derived once here; the
// store is immutable so it never needs rebuilding.
func New(store *gtfs.FeedStore, opts Options) *Planner {
	return &Planner{
		store: store,
		graph: BuildStopRoutes(store),
		opts:  opts.withDefaults(),
	}
}

// Graph exposes the stop → routes adjacency.
func (p *Planner) Graph() StopRoutes { return p.graph }

// FindRoutes finds direct and single-interchange options between two
// station names. Names are matched by substring against canonical stop
// names; fuzzy resolution is the resolver's job upstream. A name matching
// zero stops returns *StationNotFoundError.
func (p *Planner) FindRoutes(fromName, toName string) (RouteResult, error) {
	fromStops := p.store.StopsMatching(fromName)
	if len(fromStops) == 0 {
		return RouteResult{}, &StationNotFoundError{Name: fromName}
	}
	toStops := p.store.StopsMatching(toName)
	if len(toStops) == 0 {
		return RouteResult{}, &StationNotFoundError{Name: toName}
	}

	res := RouteResult{From: fromStops[0].Name, To: toStops[0].Name}

	direct := p.directOptions(fromStops, toStops)
	interchange := p.interchangeOptions(fromStops, toStops)

	// Direct options come first so the stable sort breaks duration ties
	// in discovery order.
	options := append(direct, interchange...)
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].DurationMin < options[j].DurationMin
	})
	if len(options) > p.opts.MaxOptions {
		options = options[:p.opts.MaxOptions]
	}
	res.Options = options

	if fare, err := p.CalculateFare(fromName, toName); err == nil {
		res.Fare = &fare
	}
	return res, nil
}

func (p *Planner) directOptions(fromStops, toStops []gtfs.Stop) []RouteOption {
	var options []RouteOption
	for _, fs := range fromStops {
		for _, ts := range toStops {
			if fs.ID == ts.ID {
				continue
			}
			for _, routeID := range p.graph.Common(fs.ID, ts.ID) {
				options = append(options, p.directOption(fs, ts, routeID))
				if len(options) == p.opts.DirectLimit {
					return options
				}
			}
		}
	}
	return options
}

func (p *Planner) directOption(fs, ts gtfs.Stop, routeID string) RouteOption {
	route, _ := p.store.RouteByID(routeID)
	opt := RouteOption{
		Kind:         KindDirect,
		Line:         route.ShortName,
		LineName:     route.LongName,
		FromPlatform: fs.Code,
		ToPlatform:   ts.Code,
	}
	dep, arr, ok := p.sharedTripTimes(fs.ID, ts.ID, routeID)
	if ok {
		opt.Departure = dep.Clock()
		opt.Arrival = arr.Clock()
		opt.DurationMin = gtfs.DurationMinutes(dep, arr)
	} else {
		// The line serves both stops but no single trip does; the
		// adjacency simplification shows here.
		opt.DurationMin = p.opts.InterchangeEstimate
		opt.Estimated = true
	}
	return opt
}

// sharedTripTimes finds a trip of the route visiting both stops and
// returns the departure at from and arrival at to. Trips traveling
// from → to are preferred; failing that any shared trip is used, which
// relies on the overnight wraparound in DurationMinutes.
func (p *Planner) sharedTripTimes(fromID, toID, routeID string) (dep, arr gtfs.TimeOfDay, ok bool) {
	var fallbackDep, fallbackArr gtfs.TimeOfDay
	var haveFallback bool
	for _, st := range p.store.StopTimesForStop(fromID) {
		trip, found := p.store.TripByID(st.TripID)
		if !found || trip.RouteID != routeID {
			continue
		}
		for _, other := range p.store.StopTimesForTrip(st.TripID) {
			if other.StopID != toID {
				continue
			}
			if other.Seq > st.Seq {
				return st.Departure, other.Arrival, true
			}
			if !haveFallback {
				fallbackDep, fallbackArr = st.Departure, other.Arrival
				haveFallback = true
			}
		}
	}
	return fallbackDep, fallbackArr, haveFallback
}

func (p *Planner) interchangeOptions(fromStops, toStops []gtfs.Stop) []RouteOption {
	var options []RouteOption
	seen := map[string]struct{}{}
	for _, fs := range fromStops {
		for _, ts := range toStops {
			if fs.ID == ts.ID || p.graph.Connected(fs.ID, ts.ID) {
				continue
			}
			for _, via := range p.store.Stops() {
				if via.ID == fs.ID || via.ID == ts.ID {
					continue
				}
				if _, dup := seen[via.Name]; dup {
					continue
				}
				first := p.firstCommonRoute(via.ID, fs.ID)
				second := p.firstCommonRoute(via.ID, ts.ID)
				if first == "" || second == "" {
					continue
				}
				firstRoute, _ := p.store.RouteByID(first)
				secondRoute, _ := p.store.RouteByID(second)
				seen[via.Name] = struct{}{}
				options = append(options, RouteOption{
					Kind:        KindInterchange,
					Line:        firstRoute.ShortName,
					LineName:    firstRoute.LongName,
					Interchange: via.Name,
					ToLine:      secondRoute.ShortName,
					ToLineName:  secondRoute.LongName,
					DurationMin: p.opts.InterchangeEstimate,
					Estimated:   true,
				})
				if len(options) == p.opts.InterchangeLimit {
					return options
				}
			}
		}
	}
	return options
}

func (p *Planner) firstCommonRoute(a, b string) string {
	common := p.graph.Common(a, b)
	if len(common) == 0 {
		return ""
	}
	return common[0]
}
