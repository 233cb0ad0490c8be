package ports

import (
	"context"

	"github.com/stoik/phishing-detector/internal/domain"
)

// AnalysisCache stores composite results keyed by a request fingerprint
//
// A miss is reported as (nil, nil). Callers treat cache errors as misses.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*domain.CachedAnalysis, error)
	Set(ctx context.Context, key string, analysis *domain.CachedAnalysis) error
}
