package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/gastrack/internal/cylinder"
)

type Adder interface {
	AddMany(ctx context.Context, params []cylinder.AddParams) ([]*cylinder.Cylinder, error)
}

// Resolver maps a gas name as written in a file to an inventory gas type.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (string, error)
}

// Service imports a whole file as one batch: every row is added or none is.
type Service struct {
	parser   *Parser
	adder    Adder
	resolver Resolver
}

func NewService(adder Adder, resolver Resolver) *Service {
	return &Service{parser: NewParser(), adder: adder, resolver: resolver}
}

func (s *Service) Import(ctx context.Context, r io.Reader) ([]*cylinder.Cylinder, error) {
	params, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]string)

	for i := range params {
		raw := params[i].GasType

		gas, ok := resolved[raw]
		if !ok {
			gas, err = s.resolver.Resolve(ctx, raw)
			if err != nil {
				return nil, err
			}

			resolved[raw] = gas
		}

		params[i].GasType = gas
	}

	return s.adder.AddMany(ctx, params)
}
