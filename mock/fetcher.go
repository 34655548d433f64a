package mock

import (
	"context"

	"github.com/fwojciec/formpull"
)

var _ formpull.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of formpull.Fetcher.
type Fetcher struct {
	FetchDataFn func(ctx context.Context, req formpull.Request, flag bool) (*formpull.Response, error)
}

func (f *Fetcher) FetchData(ctx context.Context, req formpull.Request, flag bool) (*formpull.Response, error) {
	return f.FetchDataFn(ctx, req, flag)
}
