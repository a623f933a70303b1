package handler

import (
	"net/http"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

type route struct {
	method string
	path   string
}

// NewRouter creates and configures the main application router. Routes match on exact
// method and path; everything else is answered with 404.
func NewRouter(cfg *config.Config, service ports.ClickService, metrics statsd.ClientInterface) http.Handler {
	h := NewHTTPHandler(service)
	mw := NewMiddleware(cfg, metrics)

	routes := map[route]http.Handler{
		{http.MethodPost, "/log"}:  http.HandlerFunc(h.Log),
		{http.MethodGet, "/stats"}: mw.BearerAuth(http.HandlerFunc(h.Stats)),
	}

	dispatch := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next, ok := routes[route{r.Method, r.URL.Path}]
		if !ok {
			NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})

	routeTag := func(r *http.Request) string {
		if _, ok := routes[route{r.Method, r.URL.Path}]; ok {
			return r.URL.Path
		}
		return "unmatched"
	}

	return mw.RequestLogger(routeTag, dispatch)
}
