package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gastrack/internal/audit"
)

func TestAuditor_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := audit.NewMockRepository(ctrl)
	gauge := audit.NewMockGauge(ctrl)

	found := []audit.Violation{
		{SerialNumber: "CYL1001", Problem: audit.ProblemCompanyWithoutDispatch},
		{SerialNumber: "CYL1002", Problem: audit.ProblemActiveAndArchived},
	}

	repo.EXPECT().FindViolations(gomock.Any()).Return(found, nil)
	gauge.EXPECT().SetInvariantViolations(2)

	got, err := audit.New(repo, gauge, time.Second).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, found, got)
}

func TestAuditor_RunErrorLeavesGauge(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := audit.NewMockRepository(ctrl)

	repo.EXPECT().FindViolations(gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := audit.New(repo, audit.NewMockGauge(ctrl), time.Second).Run(context.Background())
	assert.Error(t, err)
}

func TestSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := audit.New(audit.NewMockRepository(ctrl), audit.NewMockGauge(ctrl), time.Second)

	c := cron.New()

	require.NoError(t, audit.Schedule(c, "", a))
	assert.Empty(t, c.Entries())

	require.NoError(t, audit.Schedule(c, "@every 5m", a))
	assert.Len(t, c.Entries(), 1)

	assert.Error(t, audit.Schedule(c, "not a schedule", a))
}
