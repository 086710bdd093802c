package service

import (
	"context"

	"davomat/internal/config"
	"davomat/internal/domain"
	"davomat/internal/events"
	"davomat/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo        domain.Repository
	eventBus    domain.EventPublisher
	logger      *zerolog.Logger
	superAdmins map[int64]bool
}

func NewUserService(repo domain.Repository, eventBus domain.EventPublisher, cfg *config.Config, logger *zerolog.Logger) *UserService {
	superAdmins := make(map[int64]bool)
	for _, id := range cfg.SuperAdmins {
		superAdmins[id] = true
	}

	return &UserService{
		repo:        repo,
		eventBus:    eventBus,
		logger:      logger,
		superAdmins: superAdmins,
	}
}

// IsBootstrapAdmin сообщает, входит ли пользователь в список супер-админов
// из конфигурации. Такие пользователи не проходят верификацию.
func (s *UserService) IsBootstrapAdmin(userID int64) bool {
	return s.superAdmins[userID]
}

// Register сохраняет нового пользователя. Супер-админы из конфигурации
// получают роль и верификацию сразу, остальные ждут подтверждения.
func (s *UserService) Register(ctx context.Context, user *models.User) error {
	if s.IsBootstrapAdmin(user.ID) {
		user.Role = models.RoleSuperAdmin
		user.IsVerified = true
	}
	user.IsActive = true

	if err := s.repo.CreateOrUpdateUser(ctx, user); err != nil {
		return err
	}

	if !user.IsVerified {
		_ = s.eventBus.PublishJSON(events.EventUserRegistered, events.UserEventPayload{
			UserID:   user.ID,
			FullName: user.FullName,
			Role:     user.Role,
			Language: user.Language,
		})
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// Verify подтверждает регистрацию и закрепляет роль.
func (s *UserService) Verify(ctx context.Context, id int64, role string) error {
	if err := s.repo.SetUserRole(ctx, id, role); err != nil {
		return err
	}
	if err := s.repo.SetUserVerified(ctx, id, true); err != nil {
		return err
	}

	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to load user after verify")
		return nil
	}
	_ = s.eventBus.PublishJSON(events.EventUserVerified, events.UserEventPayload{
		UserID:   user.ID,
		FullName: user.FullName,
		Role:     user.Role,
	})
	return nil
}

// RejectRegistration удаляет непрошедшего проверку пользователя,
// позволяя ему зарегистрироваться заново.
func (s *UserService) RejectRegistration(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *UserService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetUserActive(ctx, id, active)
}

func (s *UserService) SetLanguage(ctx context.Context, id int64, language string) error {
	return s.repo.SetUserLanguage(ctx, id, language)
}

// Managers возвращает верифицированных менеджеров указанных ролей;
// без ролей — всех менеджеров.
func (s *UserService) Managers(ctx context.Context, onlyActive bool, roles ...string) ([]models.User, error) {
	if len(roles) == 0 {
		roles = models.ManagerRoles
	}
	return s.repo.GetUsersByRole(ctx, onlyActive, roles...)
}

func (s *UserService) Workers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetUsersByRole(ctx, false, models.RoleWorker)
}

// Unverified возвращает пользователей, ожидающих подтверждения.
func (s *UserService) Unverified(ctx context.Context) ([]models.User, error) {
	return s.repo.GetUnverifiedUsers(ctx)
}
