package payment

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/store"
	"go-wfm/internal/features/timesheet"
	"go-wfm/internal/features/user"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ListFilter struct {
	EmployeeID  string
	Status      string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

type GenerateInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
}

type PaymentService interface {
	ListPayments(ctx context.Context, callerID primitive.ObjectID, filter ListFilter, page, limit int64) ([]Payment, int64, error)
	GetPayment(ctx context.Context, callerID primitive.ObjectID, id string) (*Payment, error)
	GeneratePayments(ctx context.Context, input GenerateInput) ([]Payment, error)
	TransitionPayment(ctx context.Context, id string, to string) (*Payment, error)
	DisputePayment(ctx context.Context, callerID primitive.ObjectID, id string, reason string) (*Payment, error)
	DeletePayment(ctx context.Context, id string) error
}

type PaymentServiceImpl struct {
	PaymentRepo   PaymentRepository
	TimesheetRepo timesheet.TimesheetRepository
	EmployeeRepo  employee.EmployeeRepository
	StoreRepo     store.StoreRepository
	UserRepo      user.UserRepository
	Perms         middleware.PermissionService
	Logger        *zap.Logger
}

func NewPaymentService(paymentRepo PaymentRepository, timesheetRepo timesheet.TimesheetRepository, employeeRepo employee.EmployeeRepository, storeRepo store.StoreRepository, userRepo user.UserRepository, perms middleware.PermissionService, logger *zap.Logger) PaymentService {
	return &PaymentServiceImpl{
		PaymentRepo:   paymentRepo,
		TimesheetRepo: timesheetRepo,
		EmployeeRepo:  employeeRepo,
		StoreRepo:     storeRepo,
		UserRepo:      userRepo,
		Perms:         perms,
		Logger:        logger,
	}
}

func (s *PaymentServiceImpl) ListPayments(ctx context.Context, callerID primitive.ObjectID, filter ListFilter, page, limit int64) ([]Payment, int64, error) {
	query := map[string]interface{}{}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "payments:read")
	if err != nil {
		return nil, 0, err
	}
	if !allowed {
		emp, err := s.EmployeeRepo.FindByUserID(ctx, callerID)
		if err != nil {
			return nil, 0, apperr.Forbidden("not allowed to list payments")
		}
		query["employee_id"] = emp.ID
	} else if filter.EmployeeID != "" {
		oid, err := utils.ParseID(filter.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		query["employee_id"] = oid
	}

	if filter.Status != "" {
		if !IsValidStatus(filter.Status) {
			return nil, 0, apperr.Validation("invalid payment status %q", filter.Status)
		}
		query["status"] = filter.Status
	}
	if filter.PeriodStart != nil {
		query["period_start"] = map[string]interface{}{"$gte": *filter.PeriodStart}
	}
	if filter.PeriodEnd != nil {
		query["period_end"] = map[string]interface{}{"$lte": *filter.PeriodEnd}
	}

	offset := (page - 1) * limit
	payments, total, err := s.PaymentRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range payments {
		s.enrich(ctx, &payments[i])
	}
	return payments, total, nil
}

func (s *PaymentServiceImpl) GetPayment(ctx context.Context, callerID primitive.ObjectID, id string) (*Payment, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	payment, err := s.PaymentRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "payments:read")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, payment.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to view this payment")
	}

	s.enrich(ctx, payment)
	return payment, nil
}

// GeneratePayments creates one pending payment per employee from the
// approved, unpaid timesheets inside the period. Hours are summed with
// decimal arithmetic and the rate of the most recent sheet wins when an
// employee's rate changed mid-period.
func (s *PaymentServiceImpl) GeneratePayments(ctx context.Context, input GenerateInput) ([]Payment, error) {
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, apperr.Validation("period_start and period_end are required")
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, apperr.Validation("period_end must be after period_start")
	}

	sheets, err := s.TimesheetRepo.FindApprovedUnpaid(ctx, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return []Payment{}, nil
	}

	type group struct {
		hours  decimal.Decimal
		rate   float64
		sheets []primitive.ObjectID
	}
	groups := map[primitive.ObjectID]*group{}
	order := []primitive.ObjectID{}

	for _, sheet := range sheets {
		g, ok := groups[sheet.EmployeeID]
		if !ok {
			g = &group{hours: decimal.Zero}
			groups[sheet.EmployeeID] = g
			order = append(order, sheet.EmployeeID)
		}
		g.hours = g.hours.Add(decimal.NewFromFloat(sheet.TotalHours))
		// Sheets arrive sorted by period, so the last one seen carries the
		// employee's most recent rate.
		g.rate = sheet.HourlyRate
		g.sheets = append(g.sheets, sheet.ID)
	}

	now := time.Now()
	payments := make([]Payment, 0, len(order))
	for _, employeeID := range order {
		g := groups[employeeID]

		amount, _ := g.hours.Mul(decimal.NewFromFloat(g.rate)).Round(2).Float64()
		totalHours, _ := g.hours.Float64()

		payment := Payment{
			ID:           primitive.NewObjectID(),
			EmployeeID:   employeeID,
			PeriodStart:  input.PeriodStart,
			PeriodEnd:    input.PeriodEnd,
			TotalHours:   totalHours,
			HourlyRate:   g.rate,
			Amount:       amount,
			Status:       StatusPending,
			TimesheetIDs: g.sheets,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.PaymentRepo.Create(ctx, &payment); err != nil {
			return nil, err
		}

		for _, sheetID := range g.sheets {
			if err := s.TimesheetRepo.SetPayment(ctx, sheetID, &payment.ID); err != nil {
				s.Logger.Error("failed to link timesheet to payment",
					zap.String("timesheet_id", sheetID.Hex()),
					zap.String("payment_id", payment.ID.Hex()),
					zap.Error(err))
			}
		}

		s.enrich(ctx, &payment)
		payments = append(payments, payment)
	}

	s.Logger.Info("generated payments",
		zap.Int("count", len(payments)),
		zap.Time("period_start", input.PeriodStart),
		zap.Time("period_end", input.PeriodEnd))

	return payments, nil
}

// TransitionPayment moves a payment through the status graph. Paid sets the
// payment date, confirmed sets the confirmation date, and reopening a
// cancelled payment clears the payment date.
func (s *PaymentServiceImpl) TransitionPayment(ctx context.Context, id string, to string) (*Payment, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}
	if !IsValidStatus(to) {
		return nil, apperr.Validation("invalid payment status %q", to)
	}

	payment, err := s.PaymentRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(payment.Status, to) {
		return nil, apperr.Conflict("cannot move payment from %q to %q", payment.Status, to)
	}

	now := time.Now()
	payment.Status = to
	switch to {
	case StatusPaid:
		payment.PaidAt = &now
	case StatusConfirmed:
		payment.ConfirmedAt = &now
	case StatusPending:
		payment.PaidAt = nil
	}
	payment.UpdatedAt = now

	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.enrich(ctx, payment)
	return payment, nil
}

// DisputePayment lets the payee contest a paid payment. Callers with the
// update permission can dispute on an employee's behalf.
func (s *PaymentServiceImpl) DisputePayment(ctx context.Context, callerID primitive.ObjectID, id string, reason string) (*Payment, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	payment, err := s.PaymentRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "payments:update")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, payment.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to dispute this payment")
	}
	if !CanTransition(payment.Status, StatusDisputed) {
		return nil, apperr.Conflict("cannot dispute payment in status %q", payment.Status)
	}

	payment.Status = StatusDisputed
	if reason != "" {
		payment.Notes = reason
	}
	payment.UpdatedAt = time.Now()

	if err := s.PaymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.enrich(ctx, payment)
	return payment, nil
}

// DeletePayment removes a pending or cancelled payment and detaches its
// timesheets so they become payable again.
func (s *PaymentServiceImpl) DeletePayment(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	payment, err := s.PaymentRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if payment.Status != StatusPending && payment.Status != StatusCancelled {
		return apperr.Conflict("payment in status %q cannot be deleted", payment.Status)
	}

	if err := s.TimesheetRepo.ClearPayment(ctx, oid); err != nil {
		return err
	}

	return s.PaymentRepo.Delete(ctx, oid)
}

// canAccess reports whether the caller is the payee or the manager of the
// payee's store.
func (s *PaymentServiceImpl) canAccess(ctx context.Context, callerID primitive.ObjectID, employeeID primitive.ObjectID) bool {
	emp, err := s.EmployeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return false
	}
	if emp.UserID != nil && *emp.UserID == callerID {
		return true
	}
	if emp.StoreID == nil {
		return false
	}
	st, err := s.StoreRepo.FindByID(ctx, *emp.StoreID)
	if err != nil || st.ManagerID == nil {
		return false
	}
	return *st.ManagerID == callerID
}

func (s *PaymentServiceImpl) enrich(ctx context.Context, payment *Payment) {
	emp, err := s.EmployeeRepo.FindByID(ctx, payment.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	if usr, err := s.UserRepo.FindByID(ctx, *emp.UserID); err == nil {
		payment.EmployeeName = usr.FullName
	}
}
