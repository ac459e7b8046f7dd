package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pr-poehali-dev/telegram-diary-bot/internal/model"
	"github.com/pr-poehali-dev/telegram-diary-bot/internal/repository"
)

// CatalogService управляет услугами и клиентами владельца
type CatalogService struct {
	serviceRepo *repository.ServiceRepository
	clientRepo  *repository.ClientRepository
	logger      *zap.Logger
}

func NewCatalogService(
	serviceRepo *repository.ServiceRepository,
	clientRepo *repository.ClientRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

// AddService создаёт услугу
func (s *CatalogService) AddService(ctx context.Context, ownerID int64, name string, durationMinutes, price int) (*model.Service, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if price < 0 {
		return nil, fmt.Errorf("price must be non-negative")
	}

	service := &model.Service{
		OwnerID:         ownerID,
		Name:            name,
		DurationMinutes: durationMinutes,
		Price:           price,
		Active:          true,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	s.logger.Info("Service created",
		zap.Int64("service_id", service.ID),
		zap.Int64("owner_id", ownerID),
		zap.String("name", name),
	)
	return service, nil
}

// GetServices возвращает все услуги владельца
func (s *CatalogService) GetServices(ctx context.Context, ownerID int64) ([]*model.Service, error) {
	return s.serviceRepo.GetByOwner(ctx, ownerID)
}

// ToggleService переключает доступность услуги для записи
func (s *CatalogService) ToggleService(ctx context.Context, serviceID, ownerID int64) (*model.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil || service.OwnerID != ownerID {
		return nil, fmt.Errorf("service not found")
	}

	service.Active = !service.Active
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	s.logger.Info("Service toggled",
		zap.Int64("service_id", serviceID),
		zap.Bool("active", service.Active),
	)
	return service, nil
}

// RemoveService удаляет услугу
func (s *CatalogService) RemoveService(ctx context.Context, serviceID, ownerID int64) error {
	if err := s.serviceRepo.Delete(ctx, serviceID, ownerID); err != nil {
		return err
	}

	s.logger.Info("Service removed",
		zap.Int64("service_id", serviceID),
		zap.Int64("owner_id", ownerID),
	)
	return nil
}

// RegisterClient заводит нового клиента владельца
func (s *CatalogService) RegisterClient(ctx context.Context, ownerID int64, name, phone string) (*model.Client, error) {
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	client, err := s.clientRepo.Create(ctx, ownerID, &model.User{
		Role:  model.UserRoleClient,
		Name:  name,
		Phone: phone,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Client registered",
		zap.Int64("client_id", client.ID),
		zap.Int64("owner_id", ownerID),
	)
	return client, nil
}
