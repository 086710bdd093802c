package service

import (
	"context"
	"errors"
	"strings"

	"davomat/internal/clock"
	"davomat/internal/database"
	"davomat/internal/domain"
	"davomat/internal/events"
	"davomat/internal/models"

	"github.com/rs/zerolog"
)

// AttendanceService отвечает за дневные отметки прихода и ухода.
// Идемпотентность отметок обеспечивает слой хранения, сервис добавляет
// правило «в день одобренного отгула явки нет».
type AttendanceService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	clock    *clock.Clock
	logger   *zerolog.Logger
}

func NewAttendanceService(repo domain.Repository, eventBus domain.EventPublisher, clk *clock.Clock, logger *zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		repo:     repo,
		eventBus: eventBus,
		clock:    clk,
		logger:   logger,
	}
}

func (s *AttendanceService) CheckIn(ctx context.Context, workerID int64) (*models.AttendanceRecord, error) {
	day := s.clock.Today()

	onLeave, err := s.OnLeave(ctx, workerID, day)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return nil, ErrOnLeave
	}

	now := s.clock.Now()
	rec := &models.AttendanceRecord{WorkerID: workerID, Day: day, CheckIn: &now}
	if err := s.repo.CheckIn(ctx, rec); err != nil {
		return nil, err
	}

	_ = s.eventBus.PublishJSON(events.EventAttendanceMark, events.AttendanceEventPayload{
		WorkerID: workerID,
		Day:      day,
		CheckIn:  &now,
	})
	return rec, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, workerID int64) (*models.AttendanceRecord, error) {
	day := s.clock.Today()

	// Отгул могли одобрить уже после отметки прихода, поэтому проверка
	// нужна и на уходе.
	onLeave, err := s.OnLeave(ctx, workerID, day)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return nil, ErrOnLeave
	}

	now := s.clock.Now()
	rec := &models.AttendanceRecord{WorkerID: workerID, Day: day, CheckOut: &now}
	if err := s.repo.CheckOut(ctx, rec); err != nil {
		return nil, err
	}

	_ = s.eventBus.PublishJSON(events.EventAttendanceMark, events.AttendanceEventPayload{
		WorkerID: workerID,
		Day:      day,
		CheckOut: &now,
	})
	return rec, nil
}

func (s *AttendanceService) AddLateComment(ctx context.Context, workerID int64, comment string) error {
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) < models.MinReasonLength {
		return ErrReasonTooShort
	}

	day := s.clock.Today()
	if err := s.repo.SetLateComment(ctx, workerID, day, comment, s.clock.Now()); err != nil {
		return err
	}

	_ = s.eventBus.PublishJSON(events.EventAttendanceMark, events.AttendanceEventPayload{
		WorkerID: workerID,
		Day:      day,
		Comment:  comment,
	})
	return nil
}

// Today возвращает сегодняшнюю явку сотрудника или nil, если отметок нет.
func (s *AttendanceService) Today(ctx context.Context, workerID int64) (*models.AttendanceRecord, error) {
	rec, err := s.repo.GetAttendance(ctx, workerID, s.clock.Today())
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// Range возвращает явки за диапазон дней включительно.
func (s *AttendanceService) Range(ctx context.Context, fromDay, toDay string) ([]models.AttendanceRecord, error) {
	return s.repo.GetAttendanceRange(ctx, fromDay, toDay)
}

// OnLeave проверяет, покрывает ли день одобренный отгул.
func (s *AttendanceService) OnLeave(ctx context.Context, workerID int64, day string) (bool, error) {
	_, err := s.repo.GetApprovedLeave(ctx, workerID, day)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
