package elevation

import "golang.org/x/time/rate"

// LimiterOf exposes the request limiter of p to external tests.
func LimiterOf(p *OpenElevationProvider) *rate.Limiter {
	return p.limiter
}
