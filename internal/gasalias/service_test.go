package gasalias_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/gasalias"
)

func TestService_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		setup  func(repo *gasalias.MockRepository)
		want   string
		errKnd apperror.Kind
	}{
		{
			name: "Known",
			raw:  " O2 ",
			setup: func(repo *gasalias.MockRepository) {
				repo.EXPECT().FindGasType(gomock.Any(), "o2").Return("oxygen", true, nil)
			},
			want: "oxygen",
		},
		{
			name: "UnknownPassesThrough",
			raw:  "Argon",
			setup: func(repo *gasalias.MockRepository) {
				repo.EXPECT().FindGasType(gomock.Any(), "argon").Return("", false, nil)
			},
			want: "argon",
		},
		{
			name:  "BlankSkipsLookup",
			raw:   "  ",
			setup: func(*gasalias.MockRepository) {},
			want:  "",
		},
		{
			name: "StoreFailure",
			raw:  "n2",
			setup: func(repo *gasalias.MockRepository) {
				repo.EXPECT().FindGasType(gomock.Any(), "n2").Return("", false, errors.New("boom"))
			},
			errKnd: apperror.KindStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := gasalias.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := gasalias.NewService(repo).Resolve(context.Background(), tt.raw)

			if tt.errKnd != "" {
				require.Error(t, err)
				assert.True(t, apperror.Is(err, tt.errKnd))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := gasalias.NewMockRepository(ctrl)
	svc := gasalias.NewService(repo)

	repo.EXPECT().UpsertAlias(gomock.Any(), gasalias.Alias{Alias: "co2", GasType: "carbon dioxide"}).Return(nil)

	a, err := svc.Learn(context.Background(), "CO2", " Carbon Dioxide ")
	require.NoError(t, err)
	assert.Equal(t, "co2", a.Alias)

	_, err = svc.Learn(context.Background(), "", "oxygen")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Learn(context.Background(), "Oxygen", "oxygen")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
