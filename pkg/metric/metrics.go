package metric

import (
	"net/http"
	"time"
)

type (
	Factory interface {
		HTTP() HTTP
		Gateway() Gateway
		Callback() Callback
		Cache() Cache
		Handler() http.Handler
	}

	HTTP interface {
		Request(method, path string, status int, duration time.Duration)
		SlowRequest(method, path string, status int, duration time.Duration)
	}

	// Gateway tracks outbound calls to the bank gateway's signing endpoint.
	Gateway interface {
		ObserveSignCall(strategy string, duration time.Duration)
		SignCallFailed(strategy string, reason string)
	}

	// Callback counts classified gateway callbacks by outcome.
	Callback interface {
		Classified(status string)
		Malformed()
	}

	Cache interface {
		Hit(cache string)
		Miss(cache string)
		Eviction(cache string)
	}
)
