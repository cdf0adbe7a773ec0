package selector

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Source yields a uniform integer in [0, n).
type Source interface {
	Intn(n int) (int, error)
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("selector: n must be positive")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

type Params struct {
	fx.In

	Log     *zap.Logger
	Catalog catalogdomain.Service
	Source  Source `optional:"true"`
}

// Selector picks one item uniformly from the eligible set.
type Selector struct {
	log     *zap.Logger
	catalog catalogdomain.Service
	source  Source
}

func New(p Params) *Selector {
	source := p.Source
	if source == nil {
		source = CryptoSource{}
	}
	return &Selector{
		log:     p.Log.Named("selector"),
		catalog: p.Catalog,
		source:  source,
	}
}

// PickRandom returns nil, nil when nothing matches filter.
func (s *Selector) PickRandom(ctx context.Context, filter catalogdomain.Filter) (*catalogdomain.Food, error) {
	foods, err := s.catalog.Eligible(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, nil
	}

	idx, err := s.source.Intn(len(foods))
	if err != nil {
		return nil, fmt.Errorf("random index: %w", err)
	}
	picked := foods[idx]
	return &picked, nil
}
