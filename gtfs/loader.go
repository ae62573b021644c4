package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Feed file names. The first four are required; calendar is optional.
var requiredFiles = []string{"stops.txt", "routes.txt", "trips.txt", "stop_times.txt"}

const calendarFile = "calendar.txt"

// LoadError reports a missing or malformed feed file. It is fatal at
// startup: an empty dataset would masquerade as "no route found" instead
// of "system misconfigured", so the load never defaults silently.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("gtfs: load %s: %v", e.File, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// LoadFromDir loads a feed from a directory of GTFS .txt files.
func LoadFromDir(dir string) (*FeedStore, error) {
	s := newFeedStore()
	for _, name := range requiredFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, &LoadError{File: name, Err: err}
		}
		err = s.consume(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	if f, err := os.Open(filepath.Join(dir, calendarFile)); err == nil {
		err = s.consume(calendarFile, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	s.finish()
	return s, nil
}

// LoadFromZip loads a feed from a local GTFS zip archive.
func LoadFromZip(path string) (*FeedStore, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &LoadError{File: path, Err: err}
	}
	defer zr.Close()

	files := map[string]*zip.File{}
	for _, f := range zr.File {
		files[strings.ToLower(f.Name)] = f
	}
	s := newFeedStore()
	for _, name := range append(append([]string{}, requiredFiles...), calendarFile) {
		f, ok := files[name]
		if !ok {
			if name == calendarFile {
				continue
			}
			return nil, &LoadError{File: name, Err: os.ErrNotExist}
		}
		r, err := f.Open()
		if err != nil {
			return nil, &LoadError{File: name, Err: err}
		}
		err = s.consume(name, r)
		r.Close()
		if err != nil {
			return nil, err
		}
	}
	s.finish()
	return s, nil
}

func (s *FeedStore) consume(name string, r io.Reader) error {
	csvr := csv.NewReader(r)
	csvr.TrimLeadingSpace = true
	rec, err := csvr.ReadAll()
	if err != nil {
		return &LoadError{File: name, Err: err}
	}
	if len(rec) == 0 {
		return &LoadError{File: name, Err: fmt.Errorf("empty file")}
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	require := func(cols ...string) ([]int, error) {
		out := make([]int, len(cols))
		for i, c := range cols {
			out[i] = idx(c)
			if out[i] < 0 {
				return nil, &LoadError{File: name, Err: fmt.Errorf("missing required column %s", c)}
			}
		}
		return out, nil
	}
	field := func(row []string, i int) string {
		if i >= 0 && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	switch name {
	case "stops.txt":
		cols, err := require("stop_id", "stop_name", "stop_lat", "stop_lon")
		if err != nil {
			return err
		}
		code := idx("stop_code")
		desc := idx("stop_desc")
		for _, row := range rec[1:] {
			lat, err := strconv.ParseFloat(field(row, cols[2]), 64)
			if err != nil {
				return &LoadError{File: name, Err: fmt.Errorf("stop %s: bad stop_lat: %w", field(row, cols[0]), err)}
			}
			lon, err := strconv.ParseFloat(field(row, cols[3]), 64)
			if err != nil {
				return &LoadError{File: name, Err: fmt.Errorf("stop %s: bad stop_lon: %w", field(row, cols[0]), err)}
			}
			st := Stop{
				ID:   field(row, cols[0]),
				Name: field(row, cols[1]),
				Code: field(row, code),
				Desc: field(row, desc),
				Lat:  lat,
				Lon:  lon,
			}
			if st.Desc == "" {
				st.Desc = DefaultStopDesc
			}
			s.stopIdx[st.ID] = len(s.stops)
			s.stops = append(s.stops, st)
		}
	case "routes.txt":
		cols, err := require("route_id", "route_short_name", "route_long_name")
		if err != nil {
			return err
		}
		desc := idx("route_desc")
		for _, row := range rec[1:] {
			r := Route{
				ID:        field(row, cols[0]),
				ShortName: field(row, cols[1]),
				LongName:  field(row, cols[2]),
				Desc:      field(row, desc),
			}
			s.routes[r.ID] = r
		}
	case "trips.txt":
		cols, err := require("trip_id", "route_id")
		if err != nil {
			return err
		}
		service := idx("service_id")
		headsign := idx("trip_headsign")
		for _, row := range rec[1:] {
			t := Trip{
				ID:        field(row, cols[0]),
				RouteID:   field(row, cols[1]),
				ServiceID: field(row, service),
				Headsign:  field(row, headsign),
			}
			if t.Headsign == "" {
				t.Headsign = DefaultHeadsign
			}
			s.trips[t.ID] = t
		}
	case "stop_times.txt":
		cols, err := require("trip_id", "stop_id", "stop_sequence", "arrival_time", "departure_time")
		if err != nil {
			return err
		}
		for _, row := range rec[1:] {
			seq, err := strconv.Atoi(field(row, cols[2]))
			if err != nil {
				return &LoadError{File: name, Err: fmt.Errorf("trip %s: bad stop_sequence: %w", field(row, cols[0]), err)}
			}
			arr, err := ParseTimeOfDay(field(row, cols[3]))
			if err != nil {
				return &LoadError{File: name, Err: fmt.Errorf("trip %s: bad arrival_time: %w", field(row, cols[0]), err)}
			}
			dep, err := ParseTimeOfDay(field(row, cols[4]))
			if err != nil {
				return &LoadError{File: name, Err: fmt.Errorf("trip %s: bad departure_time: %w", field(row, cols[0]), err)}
			}
			s.stopTimes = append(s.stopTimes, StopTime{
				TripID:    field(row, cols[0]),
				StopID:    field(row, cols[1]),
				Seq:       seq,
				Arrival:   arr,
				Departure: dep,
			})
		}
	case calendarFile:
		cols, err := require("service_id")
		if err != nil {
			return err
		}
		// time.Weekday order: Sunday first.
		dayCols := []int{idx("sunday"), idx("monday"), idx("tuesday"), idx("wednesday"), idx("thursday"), idx("friday"), idx("saturday")}
		for _, row := range rec[1:] {
			c := Calendar{ServiceID: field(row, cols[0])}
			for i, dc := range dayCols {
				c.Days[i] = field(row, dc) == "1"
			}
			s.services[c.ServiceID] = c
		}
	}
	return nil
}

// finish builds the per-stop and per-trip indexes once all rows are in.
func (s *FeedStore) finish() {
	for _, st := range s.stopTimes {
		s.timesByStop[st.StopID] = append(s.timesByStop[st.StopID], st)
		s.timesByTrip[st.TripID] = append(s.timesByTrip[st.TripID], st)
	}
	for trip, times := range s.timesByTrip {
		sort.SliceStable(times, func(i, j int) bool { return times[i].Seq < times[j].Seq })
		s.timesByTrip[trip] = times
	}
}
