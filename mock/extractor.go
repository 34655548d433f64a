package mock

import (
	"context"

	"github.com/fwojciec/formpull"
)

var _ formpull.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of formpull.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(ctx context.Context, id string) (*formpull.Result, error)
}

func (e *RecordExtractor) Extract(ctx context.Context, id string) (*formpull.Result, error) {
	return e.ExtractFn(ctx, id)
}
