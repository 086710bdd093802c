package service

import (
	"context"
	"time"

	"davomat/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateOrUpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockRepository) SetUserVerified(ctx context.Context, id int64, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *mockRepository) SetUserActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockRepository) SetUserRole(ctx context.Context, id int64, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *mockRepository) SetUserLanguage(ctx context.Context, id int64, language string) error {
	args := m.Called(ctx, id, language)
	return args.Error(0)
}

func (m *mockRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) GetUsersByRole(ctx context.Context, onlyActive bool, roles ...string) ([]models.User, error) {
	callArgs := make([]interface{}, 0, len(roles)+2)
	callArgs = append(callArgs, ctx, onlyActive)
	for _, r := range roles {
		callArgs = append(callArgs, r)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockRepository) GetUnverifiedUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockRepository) CreateRequest(ctx context.Context, req *models.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockRepository) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *mockRepository) DecideRequest(ctx context.Context, id, deciderID int64, status, comment string) error {
	args := m.Called(ctx, id, deciderID, status, comment)
	return args.Error(0)
}

func (m *mockRepository) GetPendingRequests(ctx context.Context, requestType string) ([]models.Request, error) {
	args := m.Called(ctx, requestType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *mockRepository) GetStalePendingRequests(ctx context.Context, before time.Time) ([]models.Request, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *mockRepository) GetWorkerRequests(ctx context.Context, workerID int64, limit int) ([]models.Request, error) {
	args := m.Called(ctx, workerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *mockRepository) GetApprovedLeave(ctx context.Context, workerID int64, day string) (*models.Request, error) {
	args := m.Called(ctx, workerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *mockRepository) GetRequestsByDateRange(ctx context.Context, from, to time.Time) ([]models.Request, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *mockRepository) CheckIn(ctx context.Context, rec *models.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRepository) CheckOut(ctx context.Context, rec *models.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRepository) SetLateComment(ctx context.Context, workerID int64, day, comment string, at time.Time) error {
	args := m.Called(ctx, workerID, day, comment, at)
	return args.Error(0)
}

func (m *mockRepository) GetAttendance(ctx context.Context, workerID int64, day string) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, workerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *mockRepository) GetAttendanceByDay(ctx context.Context, day string) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

func (m *mockRepository) GetAttendanceRange(ctx context.Context, fromDay, toDay string) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, fromDay, toDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}
