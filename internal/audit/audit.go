// Package audit periodically checks invariants the lifecycle engine is meant
// to preserve and reports any rows that break them.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Problem string

const (
	// ProblemCompanyWithoutDispatch: a company is set on a cylinder that is
	// not dispatched.
	ProblemCompanyWithoutDispatch Problem = "company_without_dispatch"
	// ProblemDispatchWithoutCompany: a dispatched cylinder has no company.
	ProblemDispatchWithoutCompany Problem = "dispatch_without_company"
	// ProblemActiveAndArchived: the serial is both active and archived.
	ProblemActiveAndArchived Problem = "active_and_archived"
)

type Violation struct {
	SerialNumber string
	Problem      Problem
}

//go:generate mockgen -source=audit.go -destination=audit_mock.go -package=audit
type Repository interface {
	FindViolations(ctx context.Context) ([]Violation, error)
}

type Gauge interface {
	SetInvariantViolations(n int)
}

type Auditor struct {
	repo    Repository
	gauge   Gauge
	timeout time.Duration
}

func New(repo Repository, gauge Gauge, timeout time.Duration) *Auditor {
	return &Auditor{repo: repo, gauge: gauge, timeout: timeout}
}

// Run performs one audit pass and returns what it found.
func (a *Auditor) Run(ctx context.Context) ([]Violation, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	violations, err := a.repo.FindViolations(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding invariant violations: %w", err)
	}

	a.gauge.SetInvariantViolations(len(violations))

	for _, v := range violations {
		slog.Error("cylinder invariant violated", "serial", v.SerialNumber, "problem", v.Problem)
	}

	return violations, nil
}

// Schedule registers the auditor on c. An empty schedule leaves c untouched.
func Schedule(c *cron.Cron, spec string, a *Auditor) error {
	if spec == "" {
		return nil
	}

	_, err := c.AddFunc(spec, func() {
		if _, err := a.Run(context.Background()); err != nil {
			slog.Error("audit run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling audit %q: %w", spec, err)
	}

	return nil
}
