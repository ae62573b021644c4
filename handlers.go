package metroassist

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/metro-assist/gtfs"
	"github.com/theoremus-urban-solutions/metro-assist/planner"
	"github.com/theoremus-urban-solutions/metro-assist/resolver"
)

type errorBody struct {
	Error struct {
		Description string   `json:"description"`
		Missing     []string `json:"missing,omitempty"`
		Candidates  []string `json:"candidates,omitempty"`
	} `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("response encode failed")
	}
}

func (s *Server) writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	var body errorBody
	body.Error.Description = msg
	s.writeJSON(w, status, body)
}

// writeError maps the query error taxonomy onto HTTP statuses. Station
// not found and ambiguous queries are per-query outcomes, never 500s.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var notFound *planner.StationNotFoundError
	if errors.As(err, &notFound) {
		s.writeErrorMsg(w, http.StatusNotFound, err.Error())
		return
	}
	var ambiguous *resolver.AmbiguousQueryError
	if errors.As(err, &ambiguous) {
		var body errorBody
		body.Error.Description = ambiguous.Error()
		body.Error.Candidates = ambiguous.Candidates
		// Tell the caller which endpoint is missing so it can ask a
		// concrete follow-up question.
		switch len(ambiguous.Candidates) {
		case 0:
			body.Error.Missing = []string{"from", "to"}
		case 1:
			body.Error.Missing = []string{"to"}
		}
		s.writeJSON(w, http.StatusUnprocessableEntity, body)
		return
	}
	s.writeErrorMsg(w, http.StatusInternalServerError, err.Error())
}

func queryParam(r *http.Request, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(r.URL.Query().Get(n)); v != "" {
			return v
		}
	}
	return ""
}

// atTimeParam parses at=HH:MM or HH:MM:SS, defaulting to the current
// wall-clock time of day.
func atTimeParam(r *http.Request) (gtfs.TimeOfDay, error) {
	v := queryParam(r, "at")
	if v == "" {
		return gtfs.NowTimeOfDay(time.Now()), nil
	}
	if strings.Count(v, ":") == 1 {
		v += ":00"
	}
	return gtfs.ParseTimeOfDay(v)
}

func (s *Server) handleJourney(w http.ResponseWriter, r *http.Request) {
	q := queryParam(r, "q", "query")
	if q == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	plan, err := s.assistant.PlanJourney(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	from, to := queryParam(r, "from"), queryParam(r, "to")
	if from == "" || to == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "missing from/to parameters")
		return
	}
	res, err := s.assistant.FindRoutes(from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleFare(w http.ResponseWriter, r *http.Request) {
	from, to := queryParam(r, "from"), queryParam(r, "to")
	if from == "" || to == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "missing from/to parameters")
		return
	}
	fare, err := s.assistant.CalculateFare(from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fare)
}

// handleSchedule answers both schedule shapes: from+to gives the trips
// between two stations, a single station gives its next departures.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	from := queryParam(r, "from", "station")
	to := queryParam(r, "to")
	if from == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "specify at least one station")
		return
	}
	if to != "" {
		res, err := s.assistant.RouteSchedule(from, to)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, res)
		return
	}
	at, err := atTimeParam(r)
	if err != nil {
		s.writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.assistant.StationSchedule(from, at)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"stations": s.assistant.StationNames()})
}

func (s *Server) handleStationDetails(w http.ResponseWriter, r *http.Request) {
	name := queryParam(r, "name", "station")
	if name == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "missing name parameter")
		return
	}
	details, err := s.assistant.StationDetails(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleStationsNearby(w http.ResponseWriter, r *http.Request) {
	name := queryParam(r, "name", "station")
	if name == "" {
		s.writeErrorMsg(w, http.StatusBadRequest, "missing name parameter")
		return
	}
	radius := 0.0
	if v := queryParam(r, "radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			s.writeErrorMsg(w, http.StatusBadRequest, "radius must be a non-negative number")
			return
		}
		radius = parsed
	}
	nearby, err := s.assistant.NearbyStations(name, radius)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"station": name, "nearby": nearby})
}
