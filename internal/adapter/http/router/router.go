package router

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// New assembles the service mux. Nil registrars are skipped so partial
// wirings (tests, tools) stay cheap.
func New(metricsHandler http.Handler, registrars ...RouteRegistrar) *http.ServeMux {
	mux := http.NewServeMux()

	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux)
		}
	}

	return mux
}
