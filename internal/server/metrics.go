package server

import "github.com/prometheus/client_golang/prometheus"

var (
	calendarFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runsync",
		Subsystem: "sync",
		Name:      "calendar_fetches_total",
		Help:      "Calendar fetch attempts by outcome.",
	}, []string{"outcome"})

	workoutsConverted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runsync",
		Subsystem: "sync",
		Name:      "workouts_converted_total",
		Help:      "Workouts produced from calendar events.",
	})

	workoutsUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runsync",
		Subsystem: "sync",
		Name:      "workouts_uploaded_total",
		Help:      "Workouts sent to intervals.icu.",
	})
)

func init() {
	prometheus.MustRegister(calendarFetches, workoutsConverted, workoutsUploaded)
}
