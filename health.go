package metroassist

import "net/http"

type healthResponse struct {
	Status    string `json:"status"`
	Stops     int    `json:"stops"`
	Routes    int    `json:"routes"`
	Trips     int    `json:"trips"`
	StopTimes int    `json:"stop_times"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stops, routes, trips, stopTimes := s.assistant.FeedCounts()
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Stops:     stops,
		Routes:    routes,
		Trips:     trips,
		StopTimes: stopTimes,
	})
}
