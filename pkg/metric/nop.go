package metric

import (
	"net/http"
	"time"
)

// NewNopFactory returns a Factory whose collectors record nothing.
// Meant for tests.
func NewNopFactory() Factory {
	return nopFactory{}
}

type nopFactory struct{}

func (nopFactory) HTTP() HTTP         { return nopHTTP{} }
func (nopFactory) Gateway() Gateway   { return nopGateway{} }
func (nopFactory) Callback() Callback { return nopCallback{} }
func (nopFactory) Cache() Cache       { return nopCache{} }
func (nopFactory) Handler() http.Handler {
	return http.NotFoundHandler()
}

type nopHTTP struct{}

func (nopHTTP) Request(string, string, int, time.Duration)     {}
func (nopHTTP) SlowRequest(string, string, int, time.Duration) {}

type nopGateway struct{}

func (nopGateway) ObserveSignCall(string, time.Duration) {}
func (nopGateway) SignCallFailed(string, string)         {}

type nopCallback struct{}

func (nopCallback) Classified(string) {}
func (nopCallback) Malformed()        {}

type nopCache struct{}

func (nopCache) Hit(string)      {}
func (nopCache) Miss(string)     {}
func (nopCache) Eviction(string) {}
