package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/akshaysalvi/portfolio/internal/avatar"
)

var (
	// HTTP
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Avatar generation outcomes: ok, validate, allocate, encode
	AvatarGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "avatar",
			Name:      "generations_total",
			Help:      "Avatar generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	AvatarFontSourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "avatar",
			Name:      "font_source_total",
			Help:      "Font source used for rendered avatars",
		},
		[]string{"source"},
	)

	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by validation result",
		},
		[]string{"result"},
	)
)

// ObserveAvatar records the outcome of one avatar.Generator.Generate call.
func ObserveAvatar(img *avatar.Image, err error) {
	if err != nil {
		outcome := "error"
		var genErr *avatar.GenerationError
		if errors.As(err, &genErr) {
			outcome = string(genErr.Stage)
		}
		AvatarGenerationsTotal.WithLabelValues(outcome).Inc()
		return
	}
	AvatarGenerationsTotal.WithLabelValues("ok").Inc()
	AvatarFontSourceTotal.WithLabelValues(img.Font).Inc()
}
