package company_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
	"github.com/MrJamesThe3rd/gastrack/internal/company"
)

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := company.NewMockRepository(ctrl)
		repo.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *company.Company) error {
				assert.Equal(t, "Acme Gas", c.Name)
				c.ID = 12

				return nil
			})

		got, err := company.NewService(repo).Create(context.Background(), company.CreateParams{Name: "  Acme Gas ", Contact: "ops@acme.test"})
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.ID)
	})

	t.Run("NameRequired", func(t *testing.T) {
		repo := company.NewMockRepository(gomock.NewController(t))

		_, err := company.NewService(repo).Create(context.Background(), company.CreateParams{Name: " "})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	repo.EXPECT().GetCompany(gomock.Any(), int64(3)).Return(&company.Company{ID: 3, Name: "Old", Address: "Rua 1"}, nil)
	repo.EXPECT().UpdateCompany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *company.Company) error {
			assert.Equal(t, "New", c.Name)
			assert.Equal(t, "Rua 1", c.Address)

			return nil
		})

	name := "New"

	got, err := company.NewService(repo).Update(context.Background(), 3, company.UpdateParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestService_GetNotFound(t *testing.T) {
	repo := company.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().GetCompany(gomock.Any(), int64(9)).Return(nil, company.ErrNotFound)

	_, err := company.NewService(repo).Get(context.Background(), 9)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, []string{"9"}, appErr.IDs)
}

func TestService_SoftDelete(t *testing.T) {
	actor := uuid.New()

	type testCase struct {
		name      string
		setupMock func(tx *company.MockArchiveTx)
		wantKind  apperror.Kind
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(tx *company.MockArchiveTx) {
				tx.EXPECT().LockCompany(gomock.Any(), int64(5)).Return(&company.Company{ID: 5, Name: "Acme"}, nil)
				tx.EXPECT().DispatchedCylinders(gomock.Any(), int64(5)).Return(nil, nil)
				tx.EXPECT().InsertArchived(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *company.ArchivedCompany) error {
						assert.Equal(t, int64(5), a.ID)
						assert.Equal(t, actor, a.DeletedBy)

						return nil
					})
				tx.EXPECT().DeleteCompany(gomock.Any(), int64(5)).Return(int64(1), nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name: "HoldsCylinders",
			setupMock: func(tx *company.MockArchiveTx) {
				tx.EXPECT().LockCompany(gomock.Any(), int64(5)).Return(&company.Company{ID: 5, Name: "Acme"}, nil)
				tx.EXPECT().DispatchedCylinders(gomock.Any(), int64(5)).Return([]string{"CYL1001", "CYL1004"}, nil)
			},
			wantKind: apperror.KindStateConflict,
		},
		{
			name: "NotFound",
			setupMock: func(tx *company.MockArchiveTx) {
				tx.EXPECT().LockCompany(gomock.Any(), int64(5)).Return(nil, company.ErrNotFound)
			},
			wantKind: apperror.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := company.NewMockRepository(ctrl)
			tx := company.NewMockArchiveTx(ctrl)

			repo.EXPECT().BeginArchive(gomock.Any()).Return(tx, nil)
			tx.EXPECT().Rollback().Return(nil)
			tt.setupMock(tx)

			got, err := company.NewService(repo).SoftDelete(context.Background(), actor, 5)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperror.KindOf(err))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Acme", got.Name)
		})
	}
}

func TestService_HoldsCylindersNamesThem(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	tx := company.NewMockArchiveTx(ctrl)

	repo.EXPECT().BeginArchive(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback().Return(nil)
	tx.EXPECT().LockCompany(gomock.Any(), int64(5)).Return(&company.Company{ID: 5}, nil)
	tx.EXPECT().DispatchedCylinders(gomock.Any(), int64(5)).Return([]string{"CYL1001"}, nil)

	_, err := company.NewService(repo).SoftDelete(context.Background(), uuid.New(), 5)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"CYL1001"}, appErr.IDs)
	assert.Equal(t, "CYL1001 (dispatched) must be received before company 5 can be deleted", appErr.Message)
}

func TestService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	tx := company.NewMockArchiveTx(ctrl)

	repo.EXPECT().BeginArchive(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback().Return(nil)
	tx.EXPECT().LockArchived(gomock.Any(), int64(5)).Return(&company.ArchivedCompany{ID: 5, Name: "Acme"}, nil)
	tx.EXPECT().InsertCompany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *company.Company) error {
			c.ID = 31
			return nil
		})
	tx.EXPECT().MarkRestored(gomock.Any(), int64(5), int64(31)).Return(int64(1), nil)
	tx.EXPECT().Commit().Return(nil)

	got, err := company.NewService(repo).Restore(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(31), got.ID)
	assert.Equal(t, "Acme", got.Name)
}

func TestService_RestoreTwiceIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	tx := company.NewMockArchiveTx(ctrl)

	repo.EXPECT().BeginArchive(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback().Return(nil)
	tx.EXPECT().LockArchived(gomock.Any(), int64(5)).Return(nil, company.ErrNotFound)

	_, err := company.NewService(repo).Restore(context.Background(), 5)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, "company 5 not found in archive", appErr.Message)
}

func TestService_ArchiveTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	tx := company.NewMockArchiveTx(ctrl)

	repo.EXPECT().BeginArchive(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback().Return(nil)
	tx.EXPECT().LockCompany(gomock.Any(), int64(5)).
		DoAndReturn(func(ctx context.Context, _ int64) (*company.Company, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})

	svc := company.NewService(repo, company.WithTimeout(10*time.Millisecond))

	_, err := svc.SoftDelete(context.Background(), uuid.New(), 5)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindStore, appErr.Kind)
	assert.True(t, appErr.Retryable)
}

func TestService_ArchiveIgnoresCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := company.NewMockRepository(ctrl)
	tx := company.NewMockArchiveTx(ctrl)

	repo.EXPECT().BeginArchive(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (company.ArchiveTx, error) {
			require.NoError(t, ctx.Err())

			return tx, nil
		})
	tx.EXPECT().Rollback().Return(nil)
	tx.EXPECT().LockArchived(gomock.Any(), int64(5)).
		DoAndReturn(func(ctx context.Context, _ int64) (*company.ArchivedCompany, error) {
			require.NoError(t, ctx.Err())

			_, ok := ctx.Deadline()
			assert.True(t, ok, "restore runs under a deadline")

			return &company.ArchivedCompany{ID: 5, Name: "Acme"}, nil
		})
	tx.EXPECT().InsertCompany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *company.Company) error {
			c.ID = 31
			return nil
		})
	tx.EXPECT().MarkRestored(gomock.Any(), int64(5), int64(31)).Return(int64(1), nil)
	tx.EXPECT().Commit().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := company.NewService(repo).Restore(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(31), got.ID)
}

func TestService_Exists(t *testing.T) {
	repo := company.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().CompanyExists(gomock.Any(), int64(2)).Return(true, nil)

	svc := company.NewService(repo)

	ok, err := svc.Exists(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
