package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/runsync/internal/models"
	"github.com/claude/runsync/internal/upload"
)

type syncResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Workouts []models.Workout `json:"workouts,omitempty"`
	Stats    *upload.Stats    `json:"stats,omitempty"`
}

// handleSync triggers a full fetch-convert(-upload) pass. With no upload
// client configured the converted workouts are returned inline.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	events, err := s.calendar.Fetch(r.Context())
	if err != nil {
		calendarFetches.WithLabelValues("error").Inc()
		s.log.Error("calendar fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	calendarFetches.WithLabelValues("ok").Inc()

	if s.uploads == nil {
		workouts := s.conv.ProcessCalendar(events)
		workoutsConverted.Add(float64(len(workouts)))
		writeJSON(w, http.StatusOK, syncResponse{Success: true, Count: len(workouts), Workouts: workouts})
		return
	}

	uploader := upload.New(s.uploads, s.state, s.conv, false, s.log)
	stats, err := uploader.Run(r.Context(), events)
	workoutsConverted.Add(float64(stats.WorkoutsTotal))
	workoutsUploaded.Add(float64(stats.WorkoutsUploaded))
	if err != nil {
		s.log.Error("sync failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{Success: true, Count: stats.WorkoutsUploaded, Stats: stats})
}

// handleWorkouts previews the conversion without uploading anything.
func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	events, err := s.calendar.Fetch(r.Context())
	if err != nil {
		calendarFetches.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	calendarFetches.WithLabelValues("ok").Inc()

	workouts := s.conv.ProcessCalendar(events)
	writeJSON(w, http.StatusOK, syncResponse{Success: true, Count: len(workouts), Workouts: workouts})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
