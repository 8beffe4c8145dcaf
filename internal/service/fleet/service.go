package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	addonRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/addon"
	branchRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/branch"
	unitRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/unit"
	modelRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehiclemodel"
	"github.com/m04kA/SMC-RentalService/internal/service/fleet/models"
)

// Service сервис для управления автопарком
// Все операции доступны только сотрудникам
type Service struct {
	modelRepo       ModelRepository
	unitRepo        UnitRepository
	branchRepo      BranchRepository
	addonRepo       AddonRepository
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса автопарка
func NewService(
	modelRepo ModelRepository,
	unitRepo UnitRepository,
	branchRepo BranchRepository,
	addonRepo AddonRepository,
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		modelRepo:       modelRepo,
		unitRepo:        unitRepo,
		branchRepo:      branchRepo,
		addonRepo:       addonRepo,
		reservationRepo: reservationRepo,
		userClient:      userClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// CreateModel создает новую модель автомобиля
func (s *Service) CreateModel(ctx context.Context, req *models.CreateModelRequest) (*models.ModelResponse, error) {
	s.logger.Info("CreateModel: creating model %s %s by user=%d", req.Brand, req.Model, req.UserID)

	if err := s.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	model, err := req.ToDomainModel()
	if err != nil {
		s.logger.Warn("CreateModel: invalid request from user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := model.Validate(); err != nil {
		s.logger.Warn("CreateModel: validation failed for %s %s: %v", req.Brand, req.Model, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.modelRepo.Create(ctx, model)
	if err != nil {
		if errors.Is(err, modelRepo.ErrDuplicateModel) {
			s.logger.Warn("CreateModel: duplicate model %s %s", req.Brand, req.Model)
			return nil, ErrDuplicateModel
		}
		s.logger.Error("CreateModel: repository error for %s %s: %v", req.Brand, req.Model, err)
		return nil, fmt.Errorf("%w: CreateModel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateModel: successfully created model id=%d", created.ID)
	return models.FromDomainModel(created), nil
}

// CreateUnit создает новый физический автомобиль
// Номерной знак нормализуется и валидируется, ссылки на филиал и модель проверяются
func (s *Service) CreateUnit(ctx context.Context, req *models.CreateUnitRequest) (*models.UnitResponse, error) {
	s.logger.Info("CreateUnit: creating unit plate=%s for branch=%d by user=%d", req.Plate, req.BranchID, req.UserID)

	if err := s.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	unit := &domain.VehicleUnit{
		Plate:    domain.NormalizePlate(req.Plate),
		ModelID:  req.ModelID,
		BranchID: req.BranchID,
		Year:     req.Year,
		State:    domain.UnitEnabled,
	}

	if err := unit.Validate(); err != nil {
		s.logger.Warn("CreateUnit: validation failed for plate=%s: %v", unit.Plate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем ссылку на филиал
	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("CreateUnit: branch=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("CreateUnit: failed to check branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: CreateUnit - check branch: %v", ErrInternal, err)
	}

	// Проверяем ссылку на модель, если указана
	if req.ModelID != nil {
		if _, err := s.modelRepo.GetByID(ctx, *req.ModelID); err != nil {
			if errors.Is(err, modelRepo.ErrModelNotFound) {
				s.logger.Warn("CreateUnit: model=%d not found", *req.ModelID)
				return nil, ErrModelNotFound
			}
			s.logger.Error("CreateUnit: failed to check model=%d: %v", *req.ModelID, err)
			return nil, fmt.Errorf("%w: CreateUnit - check model: %v", ErrInternal, err)
		}
	}

	created, err := s.unitRepo.Create(ctx, unit)
	if err != nil {
		if errors.Is(err, unitRepo.ErrDuplicatePlate) {
			s.logger.Warn("CreateUnit: duplicate plate=%s", unit.Plate)
			return nil, ErrDuplicatePlate
		}
		s.logger.Error("CreateUnit: repository error for plate=%s: %v", unit.Plate, err)
		return nil, fmt.Errorf("%w: CreateUnit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateUnit: successfully created unit plate=%s", created.Plate)
	return models.FromDomainUnit(created), nil
}

// UpdateUnitState меняет состояние физического автомобиля.
// Списание запрещено, пока на автомобиль ссылается хотя бы одна резервация.
// Вывод из enabled запрещён при наличии назначенных ожидающих резерваций.
// Списанный автомобиль менять нельзя.
func (s *Service) UpdateUnitState(ctx context.Context, plate string, req *models.UpdateUnitStateRequest) (*models.UnitResponse, error) {
	s.logger.Info("UpdateUnitState: updating unit plate=%s to state=%s by user=%d", plate, req.State, req.UserID)

	if err := s.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	newState, err := models.ToDomainUnitState(req.State)
	if err != nil {
		s.logger.Warn("UpdateUnitState: invalid state=%s for plate=%s", req.State, plate)
		return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
	}

	normalizedPlate := domain.NormalizePlate(plate)

	var updated *domain.VehicleUnit

	// Проверка ограничений и смена состояния идут в одной транзакции,
	// чтобы параллельное назначение резервации не прошло между ними
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		unit, err := s.unitRepo.GetByPlate(ctx, normalizedPlate)
		if err != nil {
			if errors.Is(err, unitRepo.ErrUnitNotFound) {
				return ErrUnitNotFound
			}
			return fmt.Errorf("%w: UpdateUnitState - get unit: %v", ErrInternal, err)
		}

		if unit.State == newState {
			updated = unit
			return nil
		}

		if unit.State == domain.UnitDecommissioned {
			return ErrUnitDecommissioned
		}

		if newState == domain.UnitDecommissioned {
			count, err := s.reservationRepo.CountByPlate(ctx, normalizedPlate)
			if err != nil {
				return fmt.Errorf("%w: UpdateUnitState - count reservations: %v", ErrInternal, err)
			}
			if count > 0 {
				return ErrUnitHasReservations
			}
		}

		if unit.State == domain.UnitEnabled {
			pending, err := s.reservationRepo.CountPendingByPlate(ctx, normalizedPlate)
			if err != nil {
				return fmt.Errorf("%w: UpdateUnitState - count pending: %v", ErrInternal, err)
			}
			if !unit.CanLeaveEnabled(pending > 0) {
				return ErrUnitHasPendingReservations
			}
		}

		if err := s.unitRepo.UpdateState(ctx, normalizedPlate, newState); err != nil {
			if errors.Is(err, unitRepo.ErrUnitNotFound) {
				return ErrUnitNotFound
			}
			return fmt.Errorf("%w: UpdateUnitState - update state: %v", ErrInternal, err)
		}

		unit.State = newState
		updated = unit
		return nil
	})
	if err != nil {
		s.logger.Warn("UpdateUnitState: failed to update plate=%s to state=%s: %v", normalizedPlate, newState, err)
		return nil, err
	}

	s.logger.Info("UpdateUnitState: successfully updated unit plate=%s to state=%s", normalizedPlate, newState)
	return models.FromDomainUnit(updated), nil
}

// CreateAddon создает новую дополнительную услугу
func (s *Service) CreateAddon(ctx context.Context, req *models.CreateAddonRequest) (*models.AddonResponse, error) {
	s.logger.Info("CreateAddon: creating addon %q by user=%d", req.Name, req.UserID)

	if err := s.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.DailyPrice)
	if err != nil {
		s.logger.Warn("CreateAddon: invalid price=%q for addon %q", req.DailyPrice, req.Name)
		return nil, fmt.Errorf("%w: invalid price", ErrInvalidInput)
	}

	addon := &domain.Addon{
		Name:       req.Name,
		DailyPrice: price,
	}

	if err := addon.Validate(); err != nil {
		s.logger.Warn("CreateAddon: validation failed for addon %q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.addonRepo.Create(ctx, addon)
	if err != nil {
		if errors.Is(err, addonRepo.ErrDuplicateName) {
			s.logger.Warn("CreateAddon: duplicate addon name %q", req.Name)
			return nil, ErrDuplicateAddonName
		}
		s.logger.Error("CreateAddon: repository error for addon %q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: CreateAddon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAddon: successfully created addon id=%d", created.ID)
	return models.FromDomainAddon(created), nil
}

// DeleteAddon помечает услугу удаленной
// Исторические резервации продолжают ссылаться на неё
func (s *Service) DeleteAddon(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteAddon: deleting addon id=%d by user=%d", id, userID)

	if err := s.checkEmployeeAccess(ctx, userID); err != nil {
		return err
	}

	if err := s.addonRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, addonRepo.ErrAddonNotFound) {
			s.logger.Warn("DeleteAddon: addon id=%d not found", id)
			return ErrAddonNotFound
		}
		s.logger.Error("DeleteAddon: repository error for addon id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteAddon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteAddon: successfully deleted addon id=%d", id)
	return nil
}

// ListAddons получает все активные дополнительные услуги
func (s *Service) ListAddons(ctx context.Context) (*models.AddonListResponse, error) {
	addons, err := s.addonRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListAddons: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAddons - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAddonList(addons), nil
}

// checkEmployeeAccess проверяет, что пользователь является сотрудником
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
