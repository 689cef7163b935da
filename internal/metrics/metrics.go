package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Website flow
	WebsiteGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_website_generations_total",
			Help: "Website generation requests by outcome",
		},
		[]string{"outcome"}, // outcome: ok|fallback|error
	)
	WebsiteDeployments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_website_deployments_total",
			Help: "Website deployment requests by outcome",
		},
		[]string{"outcome"}, // outcome: ok|error
	)

	// LLM calls
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_llm_requests_total",
			Help: "Outbound LLM requests by model",
		},
		[]string{"model"},
	)

	// Content CRUD
	ContentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promo_content_writes_total",
			Help: "Rows written by entity",
		},
		[]string{"entity"}, // entity: tenant|brand|image|post
	)
)

func init() {
	prometheus.MustRegister(
		WebsiteGenerations,
		WebsiteDeployments,
		LLMRequests,
		ContentWrites,
	)
}

// Handler exposes the default registry, mountable on any router.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncGeneration(outcome string) {
	WebsiteGenerations.WithLabelValues(outcome).Inc()
}

func IncDeployment(outcome string) {
	WebsiteDeployments.WithLabelValues(outcome).Inc()
}

func IncLLMRequest(model string) {
	LLMRequests.WithLabelValues(model).Inc()
}

func IncContentWrite(entity string) {
	ContentWrites.WithLabelValues(entity).Inc()
}
