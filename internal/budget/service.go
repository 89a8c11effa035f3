package budget

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/core/common/validation"
	budgetDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/budget"
	"github.com/frahmantamala/portfolio/internal/core/events"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrPeriodNotFound      = errors.NewNotFoundError("budget period not found", errors.ErrCodePeriodNotFound)
	ErrCategoryNotFound    = errors.NewNotFoundError("budget category not found", errors.ErrCodeCategoryNotFound)
	ErrTransactionNotFound = errors.NewNotFoundError("transaction not found", errors.ErrCodeTransactionNotFound)
	ErrCategoryMismatch    = errors.NewValidationError("category belongs to a different period", errors.ErrCodeCategoryMismatch)
	ErrPaymentNotTracked   = errors.NewValidationError("only bills and debt categories can be marked as paid", errors.ErrCodePaymentNotTracked)
)

// Repository reads and writes budget records. Lookups by key return nil, nil
// when nothing matches.
type Repository interface {
	// GetOrCreatePeriod inserts defaults together with a new period, or nothing at all.
	GetOrCreatePeriod(ctx context.Context, month string, year int, defaults []*budgetDatamodel.Category) (*budgetDatamodel.Period, bool, error)
	FindPeriod(ctx context.Context, month string, year int) (*budgetDatamodel.Period, error)
	GetPeriodByID(ctx context.Context, id int64) (*budgetDatamodel.Period, error)

	ListCategories(ctx context.Context, periodID int64) ([]*budgetDatamodel.Category, error)
	GetCategory(ctx context.Context, id int64) (*budgetDatamodel.Category, error)
	CreateCategory(ctx context.Context, category *budgetDatamodel.Category) error
	UpdateCategory(ctx context.Context, category *budgetDatamodel.Category) error
	DeleteCategory(ctx context.Context, id int64, cascade bool) error

	ListTransactions(ctx context.Context, periodID int64) ([]*budgetDatamodel.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*budgetDatamodel.Transaction, error)
	CreateTransaction(ctx context.Context, transaction *budgetDatamodel.Transaction) error
	UpdateTransaction(ctx context.Context, transaction *budgetDatamodel.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

// SummaryRecorder receives every summary the service computes.
type SummaryRecorder interface {
	ObserveSummary(period Period, summary Summary)
}

// DefaultCategory is a template copied into every newly created period.
type DefaultCategory struct {
	Type          CategoryType
	Name          string
	PlannedAmount decimal.Decimal
}

type Option func(*Service)

func WithDefaultCategories(defaults []DefaultCategory) Option {
	return func(s *Service) {
		s.defaults = defaults
	}
}

func WithRecorder(recorder SummaryRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	repo      Repository
	publisher events.Publisher
	recorder  SummaryRecorder
	defaults  []DefaultCategory
	now       func() time.Time
	logger    *slog.Logger
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreatePeriod returns the period for month and year, inserting it (and
// the configured default categories) on first use.
func (s *Service) GetOrCreatePeriod(ctx context.Context, dto PeriodDTO) (*Period, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("period validation failed", "error", err)
		return nil, err
	}
	month, _ := NormalizeMonth(dto.Month)

	defaults := make([]*budgetDatamodel.Category, 0, len(s.defaults))
	for _, d := range s.defaults {
		defaults = append(defaults, CategoryToDataModel(Category{
			Type:          d.Type,
			Name:          d.Name,
			PlannedAmount: d.PlannedAmount,
			ActualAmount:  decimal.Zero,
		}))
	}

	dataPeriod, created, err := s.repo.GetOrCreatePeriod(ctx, month, dto.Year, defaults)
	if err != nil {
		s.logger.Error("failed to get or create period", "error", err, "month", month, "year", dto.Year)
		return nil, errors.NewInternalError("failed to get or create period", err)
	}

	period := PeriodFromDataModel(dataPeriod)
	if !created {
		return &period, nil
	}

	s.logger.Info("budget period created", "period_id", period.ID, "month", month, "year", dto.Year, "defaults", len(s.defaults))
	s.publish(ctx, events.NewPeriodCreatedEvent(period.ID, month, dto.Year))
	return &period, nil
}

// GetPeriodData loads the full snapshot of the period for month and year.
func (s *Service) GetPeriodData(ctx context.Context, month string, year int) (*PeriodData, error) {
	dto := PeriodDTO{Month: month, Year: year}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	month, _ = NormalizeMonth(month)

	dataPeriod, err := s.repo.FindPeriod(ctx, month, year)
	if err != nil {
		s.logger.Error("failed to find period", "error", err, "month", month, "year", year)
		return nil, errors.NewInternalError("failed to load period", err)
	}
	if dataPeriod == nil {
		return nil, ErrPeriodNotFound
	}

	return s.loadPeriod(ctx, PeriodFromDataModel(dataPeriod))
}

// GetSummary aggregates the period for month and year.
func (s *Service) GetSummary(ctx context.Context, month string, year int) (*PeriodData, Summary, error) {
	data, err := s.GetPeriodData(ctx, month, year)
	if err != nil {
		return nil, Summary{}, err
	}
	return data, s.summarize(data), nil
}

// SummaryByPeriodID aggregates the period with the given id.
func (s *Service) SummaryByPeriodID(ctx context.Context, periodID int64) (*PeriodData, Summary, error) {
	dataPeriod, err := s.repo.GetPeriodByID(ctx, periodID)
	if err != nil {
		s.logger.Error("failed to get period", "error", err, "period_id", periodID)
		return nil, Summary{}, errors.NewInternalError("failed to load period", err)
	}
	if dataPeriod == nil {
		return nil, Summary{}, ErrPeriodNotFound
	}

	data, err := s.loadPeriod(ctx, PeriodFromDataModel(dataPeriod))
	if err != nil {
		return nil, Summary{}, err
	}
	return data, s.summarize(data), nil
}

func (s *Service) AddCategory(ctx context.Context, periodID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("category validation failed", "error", err, "period_id", periodID)
		return nil, err
	}
	if err := s.requirePeriod(ctx, periodID); err != nil {
		return nil, err
	}

	dataCategory := CategoryToDataModel(Category{
		PeriodID:      periodID,
		Type:          CategoryType(dto.Type),
		Name:          dto.Name,
		PlannedAmount: Amount(dto.PlannedAmount),
		ActualAmount:  decimal.Zero,
	})
	if err := s.repo.CreateCategory(ctx, dataCategory); err != nil {
		s.logger.Error("failed to create category", "error", err, "period_id", periodID)
		return nil, errors.NewInternalError("failed to create category", err)
	}

	category := CategoryFromDataModel(dataCategory)
	s.logger.Info("category added", "category_id", category.ID, "period_id", periodID, "type", category.Type)
	s.publish(ctx, events.NewBudgetChangedEvent(events.EventTypeCategoryAdded, periodID, category.ID))
	return &category, nil
}

// UpdateCategory patches the fields present in dto. A stored actual amount is
// accepted for every type even though expense actuals are derived. Only bills
// and debt can be marked paid.
func (s *Service) UpdateCategory(ctx context.Context, id int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("category validation failed", "error", err, "category_id", id)
		return nil, err
	}

	dataCategory, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.IsPaid != nil && *dto.IsPaid && !CategoryType(dataCategory.Type).TracksPayment() {
		s.logger.Warn("is_paid set on a category without payments", "category_id", id, "type", dataCategory.Type)
		return nil, ErrPaymentNotTracked
	}

	if dto.Name != nil {
		dataCategory.Name = *dto.Name
	}
	dataCategory.PlannedAmount = optionalAmount(dto.PlannedAmount, dataCategory.PlannedAmount)
	dataCategory.ActualAmount = optionalAmount(dto.ActualAmount, dataCategory.ActualAmount)
	if dto.IsPaid != nil {
		dataCategory.IsPaid = *dto.IsPaid
	}

	if err := s.repo.UpdateCategory(ctx, dataCategory); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, errors.NewInternalError("failed to update category", err)
	}

	category := CategoryFromDataModel(dataCategory)
	s.publish(ctx, events.NewBudgetChangedEvent(events.EventTypeCategoryUpdated, category.PeriodID, category.ID))
	return &category, nil
}

// RemoveCategory deletes a category. Its transactions stay in place unless
// cascade is set.
func (s *Service) RemoveCategory(ctx context.Context, id int64, cascade bool) error {
	dataCategory, err := s.getCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCategory(ctx, id, cascade); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id, "cascade", cascade)
		return errors.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category removed", "category_id", id, "period_id", dataCategory.PeriodID, "cascade", cascade)
	s.publish(ctx, events.NewBudgetChangedEvent(events.EventTypeCategoryRemoved, dataCategory.PeriodID, id))
	return nil
}

func (s *Service) AddTransaction(ctx context.Context, periodID int64, dto CreateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("transaction validation failed", "error", err, "period_id", periodID)
		return nil, err
	}
	if err := s.requirePeriod(ctx, periodID); err != nil {
		return nil, err
	}
	if err := s.requireCategoryIn(ctx, dto.CategoryID, periodID); err != nil {
		return nil, err
	}

	date := dto.Date
	if date == "" {
		date = s.now().Format(validation.DateLayout)
	}
	tx := Transaction{
		PeriodID:   periodID,
		CategoryID: dto.CategoryID,
		Date:       date,
		Amount:     Amount(dto.Amount),
	}
	if dto.Notes != nil {
		tx.Notes = *dto.Notes
	}

	dataTx := TransactionToDataModel(tx)
	if err := s.repo.CreateTransaction(ctx, dataTx); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "period_id", periodID)
		return nil, errors.NewInternalError("failed to create transaction", err)
	}

	created := TransactionFromDataModel(dataTx)
	s.logger.Info("transaction added", "transaction_id", created.ID, "category_id", created.CategoryID, "period_id", periodID)
	s.publish(ctx, events.NewBudgetChangedEvent(events.EventTypeTransactionAdded, periodID, created.ID))
	return &created, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, id int64, dto UpdateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("transaction validation failed", "error", err, "transaction_id", id)
		return nil, err
	}

	dataTx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to load transaction", err)
	}
	if dataTx == nil {
		return nil, ErrTransactionNotFound
	}

	if dto.CategoryID != nil && *dto.CategoryID != dataTx.CategoryID {
		if err := s.requireCategoryIn(ctx, *dto.CategoryID, dataTx.PeriodID); err != nil {
			return nil, err
		}
		dataTx.CategoryID = *dto.CategoryID
	}
	if dto.Date != nil {
		dataTx.Date = *dto.Date
	}
	dataTx.Amount = optionalAmount(dto.Amount, dataTx.Amount)
	if dto.Notes != nil {
		if *dto.Notes == "" {
			dataTx.Notes = nil
		} else {
			notes := *dto.Notes
			dataTx.Notes = &notes
		}
	}

	if err := s.repo.UpdateTransaction(ctx, dataTx); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id)
		return nil, errors.NewInternalError("failed to update transaction", err)
	}

	tx := TransactionFromDataModel(dataTx)
	s.publish(ctx, events.NewBudgetChangedEvent(events.EventTypeTransactionUpdated, tx.PeriodID, tx.ID))
	return &tx, nil
}

func (s *Service) RemoveTransaction(ctx context.Context, id int64) error {
	dataTx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", id)
		return errors.NewInternalError("failed to load transaction", err)
	}
	if dataTx == nil {
		return ErrTransactionNotFound
	}

	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id)
		return errors.NewInternalError("failed to delete transaction", err)
	}

	s.publish(ctx, events.NewBudgetChangedEvent(events.EventTypeTransactionRemoved, dataTx.PeriodID, id))
	return nil
}

func (s *Service) loadPeriod(ctx context.Context, period Period) (*PeriodData, error) {
	var (
		categories   []*budgetDatamodel.Category
		transactions []*budgetDatamodel.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.repo.ListCategories(gctx, period.ID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.repo.ListTransactions(gctx, period.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load period data", "error", err, "period_id", period.ID)
		return nil, errors.NewInternalError("failed to load period data", err)
	}

	return &PeriodData{
		Period:       period,
		Categories:   CategoriesFromDataModel(categories),
		Transactions: TransactionsFromDataModel(transactions),
	}, nil
}

func (s *Service) summarize(data *PeriodData) Summary {
	summary := ComputeSummary(data.Categories, data.Transactions)
	if s.recorder != nil {
		s.recorder.ObserveSummary(data.Period, summary)
	}
	return summary
}

func (s *Service) requirePeriod(ctx context.Context, periodID int64) error {
	p, err := s.repo.GetPeriodByID(ctx, periodID)
	if err != nil {
		s.logger.Error("failed to get period", "error", err, "period_id", periodID)
		return errors.NewInternalError("failed to load period", err)
	}
	if p == nil {
		return ErrPeriodNotFound
	}
	return nil
}

func (s *Service) getCategory(ctx context.Context, id int64) (*budgetDatamodel.Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, errors.NewInternalError("failed to load category", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *Service) requireCategoryIn(ctx context.Context, categoryID, periodID int64) error {
	c, err := s.getCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if c.PeriodID != periodID {
		s.logger.Warn("category belongs to another period", "category_id", categoryID, "category_period_id", c.PeriodID, "period_id", periodID)
		return ErrCategoryMismatch
	}
	return nil
}

// publish stamps budget events with the subject of the admin token, when there
// is one, before handing them to the bus.
func (s *Service) publish(ctx context.Context, event *events.BudgetChangedEvent) {
	if s.publisher == nil {
		return
	}
	event.WithActor(errors.SubjectFromContext(ctx))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
