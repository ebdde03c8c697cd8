package timesheet

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/store"
	"go-wfm/internal/features/user"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListFilter struct {
	EmployeeID  string
	StoreID     string
	Status      string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

type CreateTimesheetInput struct {
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	DailyHours  map[string]float64
	Notes       string
}

type UpdateTimesheetInput struct {
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Notes       *string
}

type TimesheetService interface {
	ListTimesheets(ctx context.Context, callerID primitive.ObjectID, filter ListFilter, page, limit int64) ([]Timesheet, int64, error)
	GetTimesheet(ctx context.Context, callerID primitive.ObjectID, id string) (*Timesheet, error)
	CreateTimesheet(ctx context.Context, callerID primitive.ObjectID, input CreateTimesheetInput) (*Timesheet, error)
	UpdateTimesheet(ctx context.Context, callerID primitive.ObjectID, id string, input UpdateTimesheetInput) (*Timesheet, error)
	UpdateDailyHours(ctx context.Context, callerID primitive.ObjectID, id string, daily map[string]float64) (*Timesheet, error)
	SubmitTimesheet(ctx context.Context, callerID primitive.ObjectID, id string) (*Timesheet, error)
	ApproveTimesheet(ctx context.Context, reviewerID primitive.ObjectID, id string) (*Timesheet, error)
	RejectTimesheet(ctx context.Context, reviewerID primitive.ObjectID, id string, reason string) (*Timesheet, error)
	DeleteTimesheet(ctx context.Context, id string) error
}

type TimesheetServiceImpl struct {
	TimesheetRepo TimesheetRepository
	EmployeeRepo  employee.EmployeeRepository
	StoreRepo     store.StoreRepository
	UserRepo      user.UserRepository
	Perms         middleware.PermissionService
}

func NewTimesheetService(timesheetRepo TimesheetRepository, employeeRepo employee.EmployeeRepository, storeRepo store.StoreRepository, userRepo user.UserRepository, perms middleware.PermissionService) TimesheetService {
	return &TimesheetServiceImpl{
		TimesheetRepo: timesheetRepo,
		EmployeeRepo:  employeeRepo,
		StoreRepo:     storeRepo,
		UserRepo:      userRepo,
		Perms:         perms,
	}
}

func (s *TimesheetServiceImpl) ListTimesheets(ctx context.Context, callerID primitive.ObjectID, filter ListFilter, page, limit int64) ([]Timesheet, int64, error) {
	query := map[string]interface{}{}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "timesheets:read")
	if err != nil {
		return nil, 0, err
	}
	if !allowed {
		emp, err := s.EmployeeRepo.FindByUserID(ctx, callerID)
		if err != nil {
			return nil, 0, apperr.Forbidden("not allowed to list timesheets")
		}
		query["employee_id"] = emp.ID
	} else if filter.EmployeeID != "" {
		oid, err := utils.ParseID(filter.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		query["employee_id"] = oid
	}

	if filter.StoreID != "" {
		oid, err := utils.ParseID(filter.StoreID)
		if err != nil {
			return nil, 0, err
		}
		query["store_id"] = oid
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PeriodStart != nil {
		query["period_start"] = map[string]interface{}{"$gte": *filter.PeriodStart}
	}
	if filter.PeriodEnd != nil {
		query["period_end"] = map[string]interface{}{"$lte": *filter.PeriodEnd}
	}

	offset := (page - 1) * limit
	sheets, total, err := s.TimesheetRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range sheets {
		s.enrich(ctx, &sheets[i])
	}
	return sheets, total, nil
}

func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, callerID primitive.ObjectID, id string) (*Timesheet, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	sheet, err := s.TimesheetRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "timesheets:read")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, sheet.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to view this timesheet")
	}

	s.enrich(ctx, sheet)
	return sheet, nil
}

func (s *TimesheetServiceImpl) CreateTimesheet(ctx context.Context, callerID primitive.ObjectID, input CreateTimesheetInput) (*Timesheet, error) {
	emp, err := s.resolveEmployee(ctx, callerID, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, apperr.Validation("period_start and period_end are required")
	}
	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, apperr.Validation("period_end must be after period_start")
	}
	if err := ValidateDailyHours(input.DailyHours); err != nil {
		return nil, err
	}

	daily := input.DailyHours
	if daily == nil {
		daily = map[string]float64{}
	}

	now := time.Now()
	sheet := &Timesheet{
		ID:          primitive.NewObjectID(),
		EmployeeID:  emp.ID,
		StoreID:     emp.StoreID,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		DailyHours:  daily,
		HourlyRate:  emp.HourlyRate,
		Status:      StatusDraft,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sheet.Recalculate()

	if err := s.TimesheetRepo.Create(ctx, sheet); err != nil {
		return nil, err
	}

	s.enrich(ctx, sheet)
	return sheet, nil
}

func (s *TimesheetServiceImpl) UpdateTimesheet(ctx context.Context, callerID primitive.ObjectID, id string, input UpdateTimesheetInput) (*Timesheet, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	sheet, err := s.TimesheetRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "timesheets:update")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, sheet.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to edit this timesheet")
	}
	if !sheet.Editable() {
		return nil, apperr.Conflict("timesheet in status %q cannot be edited", sheet.Status)
	}

	if input.PeriodStart != nil {
		sheet.PeriodStart = *input.PeriodStart
	}
	if input.PeriodEnd != nil {
		sheet.PeriodEnd = *input.PeriodEnd
	}
	if !sheet.PeriodEnd.After(sheet.PeriodStart) {
		return nil, apperr.Validation("period_end must be after period_start")
	}
	if err := ValidateDailyHours(sheet.DailyHours); err != nil {
		return nil, err
	}
	if input.Notes != nil {
		sheet.Notes = *input.Notes
	}

	sheet.Recalculate()
	sheet.UpdatedAt = time.Now()
	if err := s.TimesheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	s.enrich(ctx, sheet)
	return sheet, nil
}

// UpdateDailyHours replaces the hour entries of an editable sheet and
// recomputes the totals.
func (s *TimesheetServiceImpl) UpdateDailyHours(ctx context.Context, callerID primitive.ObjectID, id string, daily map[string]float64) (*Timesheet, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	sheet, err := s.TimesheetRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "timesheets:update")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, sheet.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to edit this timesheet")
	}
	if !sheet.Editable() {
		return nil, apperr.Conflict("timesheet in status %q cannot be edited", sheet.Status)
	}
	if err := ValidateDailyHours(daily); err != nil {
		return nil, err
	}

	sheet.DailyHours = daily
	sheet.Recalculate()
	sheet.UpdatedAt = time.Now()

	if err := s.TimesheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	s.enrich(ctx, sheet)
	return sheet, nil
}

func (s *TimesheetServiceImpl) SubmitTimesheet(ctx context.Context, callerID primitive.ObjectID, id string) (*Timesheet, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	sheet, err := s.TimesheetRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "timesheets:update")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, sheet.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to submit this timesheet")
	}
	if !CanTransition(sheet.Status, StatusSubmitted) {
		return nil, apperr.Conflict("cannot submit timesheet in status %q", sheet.Status)
	}

	now := time.Now()
	sheet.Status = StatusSubmitted
	sheet.SubmittedAt = &now
	sheet.UpdatedAt = now

	if err := s.TimesheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	s.enrich(ctx, sheet)
	return sheet, nil
}

func (s *TimesheetServiceImpl) ApproveTimesheet(ctx context.Context, reviewerID primitive.ObjectID, id string) (*Timesheet, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, "")
}

func (s *TimesheetServiceImpl) RejectTimesheet(ctx context.Context, reviewerID primitive.ObjectID, id string, reason string) (*Timesheet, error) {
	return s.review(ctx, reviewerID, id, StatusRejected, reason)
}

func (s *TimesheetServiceImpl) review(ctx context.Context, reviewerID primitive.ObjectID, id string, to string, reason string) (*Timesheet, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	sheet, err := s.TimesheetRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(sheet.Status, to) {
		return nil, apperr.Conflict("cannot move timesheet from %q to %q", sheet.Status, to)
	}

	sheet.Status = to
	sheet.ReviewedBy = &reviewerID
	// Reviewer feedback lives apart from the employee's own notes. An
	// approval clears the previous rejection reason.
	sheet.ReviewNotes = reason
	sheet.UpdatedAt = time.Now()

	if err := s.TimesheetRepo.Update(ctx, sheet); err != nil {
		return nil, err
	}

	s.enrich(ctx, sheet)
	return sheet, nil
}

// DeleteTimesheet removes a sheet that is still editable and not linked to a
// payment.
func (s *TimesheetServiceImpl) DeleteTimesheet(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	sheet, err := s.TimesheetRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if !sheet.Editable() {
		return apperr.Conflict("timesheet in status %q cannot be deleted", sheet.Status)
	}
	if sheet.PaymentID != nil {
		return apperr.Conflict("timesheet is linked to a payment and cannot be deleted")
	}

	return s.TimesheetRepo.Delete(ctx, oid)
}

func (s *TimesheetServiceImpl) resolveEmployee(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*employee.Employee, error) {
	if employeeID != "" {
		allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "timesheets:update")
		if err != nil {
			return nil, err
		}
		if allowed {
			oid, err := utils.ParseID(employeeID)
			if err != nil {
				return nil, err
			}
			return s.EmployeeRepo.FindByID(ctx, oid)
		}
	}

	emp, err := s.EmployeeRepo.FindByUserID(ctx, callerID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Forbidden("no employee record linked to this account")
		}
		return nil, err
	}
	return emp, nil
}

// canAccess reports whether the caller is the sheet's own employee or the
// manager of that employee's store.
func (s *TimesheetServiceImpl) canAccess(ctx context.Context, callerID primitive.ObjectID, employeeID primitive.ObjectID) bool {
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

func (s *TimesheetServiceImpl) enrich(ctx context.Context, sheet *Timesheet) {
	emp, err := s.EmployeeRepo.FindByID(ctx, sheet.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	if usr, err := s.UserRepo.FindByID(ctx, *emp.UserID); err == nil {
		sheet.EmployeeName = usr.FullName
	}
}
