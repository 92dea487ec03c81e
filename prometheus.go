package main

import (
	"net/http"

	"feedback-server/modules"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(FeedbackCounter)
	prometheus.MustRegister(UserCounter)
	prometheus.MustRegister(TotalRequestCounter)
}

var TotalRequestCounter = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "total_request",
	Help: "Total request count",
})

var UserCounter = prometheus.NewCounterFunc(prometheus.CounterOpts{
	Name: "user_count",
	Help: "Count of registered users",
}, func() float64 {
	userCount, err := modules.GetUserCount()

	if err != nil {
		return 0
	}

	return float64(userCount)
})

var FeedbackCounter = prometheus.NewCounterFunc(prometheus.CounterOpts{
	Name: "feedback_count",
	Help: "Count of submitted feedbacks",
}, func() float64 {
	count, err := modules.GetFeedbackCount()

	if err != nil {
		return 0
	}

	return float64(count)
})

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		TotalRequestCounter.Inc()
		next.ServeHTTP(w, r)
	})
}
