package service

import (
	"context"
	"strings"

	"davomat/internal/clock"
	"davomat/internal/domain"
	"davomat/internal/events"
	"davomat/internal/models"

	"github.com/rs/zerolog"
)

// RequestService проводит заявки через жизненный цикл pending -> решено.
// Эксклюзивность решения гарантирует условный UPDATE в хранилище.
type RequestService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	clock    *clock.Clock
	logger   *zerolog.Logger
}

func NewRequestService(repo domain.Repository, eventBus domain.EventPublisher, clk *clock.Clock, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:     repo,
		eventBus: eventBus,
		clock:    clk,
		logger:   logger,
	}
}

func (s *RequestService) Create(ctx context.Context, req *models.Request) error {
	req.Reason = strings.TrimSpace(req.Reason)
	if len([]rune(req.Reason)) < models.MinReasonLength {
		return ErrReasonTooShort
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return err
	}

	_ = s.eventBus.PublishJSON(events.EventRequestCreated, s.payload(req))
	return nil
}

func (s *RequestService) Get(ctx context.Context, id int64) (*models.Request, error) {
	return s.repo.GetRequest(ctx, id)
}

// Decide применяет вердикт менеджера. Проверка полномочий идет до записи;
// проигравший гонку менеджер получает database.ErrAlreadyDecided, решение
// победителя не затирается.
func (s *RequestService) Decide(ctx context.Context, requestID int64, decider *models.User, verdict, comment string) (*models.Request, error) {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !decider.CanDecide(req.Type) {
		return nil, ErrUnauthorized
	}

	status := models.StatusRejected
	if verdict == models.VerdictApprove {
		status = models.StatusApproved
	}

	if err := s.repo.DecideRequest(ctx, requestID, decider.ID, status, strings.TrimSpace(comment)); err != nil {
		return nil, err
	}

	decided, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	_ = s.eventBus.PublishJSON(events.EventRequestDecided, s.payload(decided))
	return decided, nil
}

// PendingForRole возвращает очередь заявок, подведомственных роли:
// daily решает супер-админ, hourly — админ. Остальным очередь не положена.
func (s *RequestService) PendingForRole(ctx context.Context, role string) ([]models.Request, error) {
	switch role {
	case models.RoleSuperAdmin:
		return s.repo.GetPendingRequests(ctx, models.RequestTypeDaily)
	case models.RoleAdmin:
		return s.repo.GetPendingRequests(ctx, models.RequestTypeHourly)
	default:
		return nil, ErrUnauthorized
	}
}

// StalePending возвращает заявки, висящие без решения дольше N дней.
func (s *RequestService) StalePending(ctx context.Context, olderThanDays int) ([]models.Request, error) {
	if olderThanDays <= 0 {
		olderThanDays = models.DefaultStaleThresholdDays
	}
	before := s.clock.Now().AddDate(0, 0, -olderThanDays)
	return s.repo.GetStalePendingRequests(ctx, before)
}

func (s *RequestService) WorkerHistory(ctx context.Context, workerID int64, limit int) ([]models.Request, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetWorkerRequests(ctx, workerID, limit)
}

func (s *RequestService) payload(req *models.Request) events.RequestEventPayload {
	return events.RequestEventPayload{
		RequestID:  req.ID,
		WorkerID:   req.WorkerID,
		WorkerName: req.WorkerName,
		Type:       req.Type,
		HourlyKind: req.HourlyKind,
		Status:     req.Status,
		Reason:     req.Reason,
		LeaveDate:  req.LeaveDate,
		ReturnDate: req.ReturnDate,
		TargetTime: req.TargetTime,
		DeciderID:  req.DeciderID,
		Comment:    req.DecisionComment,
	}
}
