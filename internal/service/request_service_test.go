package service

import (
	"context"
	"io"
	"testing"
	"time"

	"davomat/internal/clock"
	"davomat/internal/database"
	"davomat/internal/events"
	"davomat/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequestService(t *testing.T, repo *mockRepository) (*RequestService, *events.EventBus) {
	t.Helper()
	clk, err := clock.New(models.DefaultTimezone)
	require.NoError(t, err)
	logger := zerolog.New(io.Discard)
	bus := events.NewEventBus()
	return NewRequestService(repo, bus, clk, &logger), bus
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepository)
		svc, bus := newRequestService(t, repo)

		var published int
		bus.Subscribe(events.EventRequestCreated, func(_ *events.Event) error {
			published++
			return nil
		})

		repo.On("CreateRequest", ctx, mock.AnythingOfType("*models.Request")).Return(nil).Once()

		req := &models.Request{
			WorkerID:  1,
			Type:      models.RequestTypeDaily,
			Reason:    "  family matters  ",
			LeaveDate: "2026-03-11",
		}
		require.NoError(t, svc.Create(ctx, req))
		assert.Equal(t, "family matters", req.Reason)
		assert.Equal(t, 1, published)
	})

	t.Run("ReasonTooShort", func(t *testing.T) {
		repo := new(mockRepository)
		svc, _ := newRequestService(t, repo)

		err := svc.Create(ctx, &models.Request{WorkerID: 1, Type: models.RequestTypeDaily, Reason: "ab"})
		assert.ErrorIs(t, err, ErrReasonTooShort)
		repo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
	})
}

func TestRequestService_Decide(t *testing.T) {
	ctx := context.Background()
	superAdmin := &models.User{ID: 99, Role: models.RoleSuperAdmin}
	admin := &models.User{ID: 98, Role: models.RoleAdmin}

	daily := &models.Request{ID: 7, WorkerID: 1, Type: models.RequestTypeDaily, Status: models.StatusPending}

	t.Run("Approve", func(t *testing.T) {
		repo := new(mockRepository)
		svc, bus := newRequestService(t, repo)

		var published int
		bus.Subscribe(events.EventRequestDecided, func(_ *events.Event) error {
			published++
			return nil
		})

		decided := &models.Request{ID: 7, WorkerID: 1, Type: models.RequestTypeDaily, Status: models.StatusApproved, DeciderID: 99}
		repo.On("GetRequest", ctx, int64(7)).Return(daily, nil).Once()
		repo.On("DecideRequest", ctx, int64(7), int64(99), models.StatusApproved, "ok").Return(nil).Once()
		repo.On("GetRequest", ctx, int64(7)).Return(decided, nil).Once()

		got, err := svc.Decide(ctx, 7, superAdmin, models.VerdictApprove, " ok ")
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, got.Status)
		assert.Equal(t, 1, published)
		repo.AssertExpectations(t)
	})

	t.Run("UnauthorizedRole", func(t *testing.T) {
		repo := new(mockRepository)
		svc, _ := newRequestService(t, repo)

		// Админ не решает daily-заявки.
		repo.On("GetRequest", ctx, int64(7)).Return(daily, nil).Once()

		_, err := svc.Decide(ctx, 7, admin, models.VerdictApprove, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "DecideRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {
		repo := new(mockRepository)
		svc, _ := newRequestService(t, repo)

		repo.On("GetRequest", ctx, int64(7)).Return(daily, nil).Once()
		repo.On("DecideRequest", ctx, int64(7), int64(99), models.StatusRejected, "").
			Return(database.ErrAlreadyDecided).Once()

		_, err := svc.Decide(ctx, 7, superAdmin, models.VerdictReject, "")
		assert.ErrorIs(t, err, database.ErrAlreadyDecided)
	})
}

func TestRequestService_PendingForRole(t *testing.T) {
	ctx := context.Background()

	t.Run("SuperAdminGetsDaily", func(t *testing.T) {
		repo := new(mockRepository)
		svc, _ := newRequestService(t, repo)

		repo.On("GetPendingRequests", ctx, models.RequestTypeDaily).Return([]models.Request{{ID: 1}}, nil).Once()

		got, err := svc.PendingForRole(ctx, models.RoleSuperAdmin)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("AdminGetsHourly", func(t *testing.T) {
		repo := new(mockRepository)
		svc, _ := newRequestService(t, repo)

		repo.On("GetPendingRequests", ctx, models.RequestTypeHourly).Return([]models.Request{}, nil).Once()

		_, err := svc.PendingForRole(ctx, models.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("WorkerUnauthorized", func(t *testing.T) {
		repo := new(mockRepository)
		svc, _ := newRequestService(t, repo)

		_, err := svc.PendingForRole(ctx, models.RoleWorker)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestRequestService_StalePending(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc, _ := newRequestService(t, repo)

	clk, err := clock.New(models.DefaultTimezone)
	require.NoError(t, err)

	// Порог отсчитывается от часов бота, а не от времени сервера.
	repo.On("GetStalePendingRequests", ctx, mock.MatchedBy(func(before time.Time) bool {
		want := clk.Now().AddDate(0, 0, -models.DefaultStaleThresholdDays)
		return before.Location().String() == clk.Location().String() &&
			before.Sub(want).Abs() < time.Minute
	})).Return([]models.Request{{ID: 1}, {ID: 2}}, nil).Once()

	got, err := svc.StalePending(ctx, 0) // 0 падает в значение по умолчанию
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}
