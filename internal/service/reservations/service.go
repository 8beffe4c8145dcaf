package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

// Service сервис для чтения резерваций
type Service struct {
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userClient:      userClient,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
// Проверяет права доступа - клиент может видеть только свою резервацию,
// сотрудник видит любую
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	addonIDs, err := s.reservationRepo.GetAddonIDs(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to fetch addons for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - fetch addons: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation, addonIDs), nil
}

// GetUserReservations получает историю резерваций клиента
// Опционально фильтрует по состоянию
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, state=%v", req.UserID, req.State)

	// Конвертируем состояние из строки в domain.ReservationState
	var domainState *domain.ReservationState
	if req.State != nil {
		state, err := models.ToDomainReservationState(*req.State)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid state=%s for user=%d", *req.State, req.UserID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		domainState = &state
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.UserID, domainState)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetBranchReservations получает резервации филиала с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, состоянию и включению завершённых резерваций
// Доступно только сотрудникам
//
// Примеры использования:
// - Все активные резервации: GetBranchReservations(ctx, &GetBranchReservationsRequest{BranchID: 1, UserID: 42})
// - Резервации на дату: StartDate и EndDate указывают на одну дату
// - Резервации за период: StartDate и EndDate указывают на разные даты
// - Только ожидающие выдачи: указать State = "pending"
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetBranchReservations(ctx context.Context, req *models.GetBranchReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetBranchReservations: fetching reservations for branch=%d, user=%d", req.BranchID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.State != nil {
		logMsg += fmt.Sprintf(", state=%s", *req.State)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа сотрудника
	if err := s.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBranchReservations: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем резервации с фильтрацией
	reservations, err := s.reservationRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchReservations: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchReservations: successfully fetched %d reservations for branch=%d", len(reservations), req.BranchID)
	return models.FromDomainReservationList(reservations), nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к резервации
// Клиент видит свою резервацию, сотрудник видит любую
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	// Если пользователь владелец резервации - доступ разрешён
	if reservation.CustomerID == userID {
		return nil
	}

	// Проверяем, является ли пользователь сотрудником
	if err := s.checkEmployeeAccess(ctx, userID); err != nil {
		// Ошибка уже залогирована в checkEmployeeAccess
		return ErrAccessDenied
	}

	return nil
}

// checkEmployeeAccess проверяет, что пользователь является сотрудником.
// При недоступности UserService пользователь считается клиентом.
func (s *Service) checkEmployeeAccess(ctx context.Context, userID int64) error {
	user, err := s.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		s.logger.Warn("checkEmployeeAccess: failed to get user=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if !user.IsEmployee() {
		s.logger.Warn("checkEmployeeAccess: user=%d is not an employee", userID)
		return ErrAccessDenied
	}

	return nil
}
