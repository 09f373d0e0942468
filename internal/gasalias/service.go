// Package gasalias maps the gas names suppliers write in import files to the
// gas types the inventory uses, e.g. "O2" to "oxygen".
package gasalias

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

type Alias struct {
	Alias   string
	GasType string
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=gasalias
type Repository interface {
	FindGasType(ctx context.Context, alias string) (string, bool, error)
	UpsertAlias(ctx context.Context, a Alias) error
	ListAliases(ctx context.Context) ([]Alias, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve returns the gas type raw stands for, or raw itself normalized when
// no alias is known.
func (s *Service) Resolve(ctx context.Context, raw string) (string, error) {
	key := normalize(raw)
	if key == "" {
		return "", nil
	}

	gas, ok, err := s.repo.FindGasType(ctx, key)
	if err != nil {
		return "", apperror.Wrap("resolve gas alias", err)
	}

	if !ok {
		return key, nil
	}

	return gas, nil
}

// Learn remembers that alias means gasType, replacing any earlier mapping.
func (s *Service) Learn(ctx context.Context, alias, gasType string) (*Alias, error) {
	a := Alias{Alias: normalize(alias), GasType: normalize(gasType)}

	if a.Alias == "" || a.GasType == "" {
		return nil, apperror.Validation("alias and gasType are required")
	}

	if a.Alias == a.GasType {
		return nil, apperror.ValidationIDs([]string{a.Alias}, "alias %s maps to itself", a.Alias)
	}

	if err := s.repo.UpsertAlias(ctx, a); err != nil {
		return nil, apperror.Wrap("save gas alias", err)
	}

	return &a, nil
}

func (s *Service) List(ctx context.Context) ([]Alias, error) {
	aliases, err := s.repo.ListAliases(ctx)
	if err != nil {
		return nil, apperror.Wrap("list gas aliases", err)
	}

	return aliases, nil
}
