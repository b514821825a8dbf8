package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-EventLedger/internal/domain"
	expenseRepo "github.com/m04kA/SMC-EventLedger/internal/infra/storage/expense"
	"github.com/m04kA/SMC-EventLedger/internal/integrations/eventbus"
	"github.com/m04kA/SMC-EventLedger/internal/service/expenses/models"
)

// Service сервис для работы с расходами
type Service struct {
	expenseRepo  ExpenseRepository
	events       EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расходов
func NewService(expenseRepo ExpenseRepository, events EventPublisher, logger Logger) *Service {
	return &Service{
		expenseRepo:  expenseRepo,
		events:       events,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает расход
func (s *Service) Create(ctx context.Context, req *models.ExpenseRequest) (*models.ExpenseResponse, error) {
	s.logger.Info("Create: creating expense category=%s, amount=%s", req.Category, req.Amount)

	expense := &domain.Expense{}
	req.ApplyTo(expense)
	if err := expense.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainExpense(created)
	s.publish(ctx, eventbus.ExpenseCreated, created.ID, resp)

	s.logger.Info("Create: successfully created expense id=%s", created.ID)
	return resp, nil
}

// GetByID получает расход по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ExpenseResponse, error) {
	s.logger.Info("GetByID: fetching expense id=%s", id)

	expense, err := s.getExpense(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainExpense(expense), nil
}

// List получает расходы с фильтрами, общей суммой и разбивкой по категориям
func (s *Service) List(ctx context.Context, req *models.ListExpensesRequest) (*models.ExpenseListResponse, error) {
	s.logger.Info("List: fetching expenses search=%q, timeframe=%q, sort=%q", req.Search, req.Timeframe, req.Sort)

	filter, err := req.ToDomainFilter(s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	expenses, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d expenses", len(expenses))
	return models.FromDomainExpenseList(expenses), nil
}

// Update перезаписывает поля расхода
func (s *Service) Update(ctx context.Context, id string, req *models.ExpenseRequest) (*models.ExpenseResponse, error) {
	s.logger.Info("Update: updating expense id=%s", id)

	expense, err := s.getExpense(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(expense)
	if err := expense.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for expense id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		if errors.Is(err, expenseRepo.ErrExpenseNotFound) {
			s.logger.Warn("Update: expense id=%s not found during update", id)
			return nil, ErrExpenseNotFound
		}
		s.logger.Error("Update: repository error for expense id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainExpense(expense)
	s.publish(ctx, eventbus.ExpenseUpdated, id, resp)

	s.logger.Info("Update: successfully updated expense id=%s", id)
	return resp, nil
}

// Delete удаляет расход
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting expense id=%s", id)

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, expenseRepo.ErrExpenseNotFound) {
			s.logger.Warn("Delete: expense id=%s not found", id)
			return ErrExpenseNotFound
		}
		s.logger.Error("Delete: repository error for expense id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, eventbus.ExpenseDeleted, id, map[string]string{"id": id})

	s.logger.Info("Delete: successfully deleted expense id=%s", id)
	return nil
}

func (s *Service) getExpense(ctx context.Context, op, id string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, expenseRepo.ErrExpenseNotFound) {
			s.logger.Warn("%s: expense id=%s not found", op, id)
			return nil, ErrExpenseNotFound
		}
		s.logger.Error("%s: repository error for expense id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return expense, nil
}

func (s *Service) publish(ctx context.Context, eventType, key string, payload interface{}) {
	if err := s.events.Publish(ctx, eventType, key, payload); err != nil {
		s.logger.Warn("publish: event %s for id=%s not sent: %v", eventType, key, err)
	}
}
