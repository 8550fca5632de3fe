package ai

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimited throttles an inner Generator. Free-tier Gemini keys allow a
// handful of requests per second; the strategy fan-out would burst past that
// without a limiter.
type rateLimited struct {
	inner   Generator
	limiter *rate.Limiter
}

// WithRateLimit wraps g so calls wait for limiter tokens. A non-positive rps
// returns g unchanged.
func WithRateLimit(g Generator, rps float64, burst int) Generator {
	if rps <= 0 {
		return g
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{inner: g, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (r *rateLimited) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *rateLimited) Supports(c Capability) bool {
	return r.inner.Supports(c)
}
