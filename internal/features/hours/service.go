package hours

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
	"go.uber.org/zap"
)

type ListFilter struct {
	EmployeeID string
	StoreID    string
	Status     string
	From       *time.Time
	To         *time.Time
}

type ClockInInput struct {
	EmployeeID string
	Notes      string
}

type UpdateHoursInput struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Notes    *string
}

type HoursService interface {
	ListHours(ctx context.Context, callerID primitive.ObjectID, filter ListFilter, page, limit int64) ([]HourRecord, int64, error)
	GetHours(ctx context.Context, callerID primitive.ObjectID, id string) (*HourRecord, error)
	ClockIn(ctx context.Context, callerID primitive.ObjectID, input ClockInInput) (*HourRecord, error)
	ClockOut(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*HourRecord, error)
	StartBreak(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*HourRecord, error)
	EndBreak(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*HourRecord, error)
	UpdateHours(ctx context.Context, id string, input UpdateHoursInput) (*HourRecord, error)
	ApproveHours(ctx context.Context, approverID primitive.ObjectID, id string) (*HourRecord, error)
	RejectHours(ctx context.Context, approverID primitive.ObjectID, id string, reason string) (*HourRecord, error)
	DeleteHours(ctx context.Context, id string) error
	AutoClockOut(ctx context.Context, olderThan time.Duration) (int, error)
}

type HoursServiceImpl struct {
	HoursRepo    HoursRepository
	EmployeeRepo employee.EmployeeRepository
	StoreRepo    store.StoreRepository
	UserRepo     user.UserRepository
	Perms        middleware.PermissionService
	Logger       *zap.Logger
}

func NewHoursService(hoursRepo HoursRepository, employeeRepo employee.EmployeeRepository, storeRepo store.StoreRepository, userRepo user.UserRepository, perms middleware.PermissionService, logger *zap.Logger) HoursService {
	return &HoursServiceImpl{
		HoursRepo:    hoursRepo,
		EmployeeRepo: employeeRepo,
		StoreRepo:    storeRepo,
		UserRepo:     userRepo,
		Perms:        perms,
		Logger:       logger,
	}
}

func (s *HoursServiceImpl) ListHours(ctx context.Context, callerID primitive.ObjectID, filter ListFilter, page, limit int64) ([]HourRecord, int64, error) {
	query := map[string]interface{}{}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "hours:read")
	if err != nil {
		return nil, 0, err
	}
	if !allowed {
		// Without the read permission a caller only sees their own records.
		emp, err := s.EmployeeRepo.FindByUserID(ctx, callerID)
		if err != nil {
			return nil, 0, apperr.Forbidden("not allowed to list hours")
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
	dateRange := map[string]interface{}{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	if len(dateRange) > 0 {
		query["clock_in"] = dateRange
	}

	offset := (page - 1) * limit
	records, total, err := s.HoursRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range records {
		s.enrich(ctx, &records[i])
	}
	return records, total, nil
}

func (s *HoursServiceImpl) GetHours(ctx context.Context, callerID primitive.ObjectID, id string) (*HourRecord, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "hours:read")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.canAccess(ctx, callerID, record.EmployeeID) {
		return nil, apperr.Forbidden("not allowed to view this hour record")
	}

	s.enrich(ctx, record)
	return record, nil
}

// ClockIn opens a new record. An employee can only have one open record at a
// time; a second clock-in is rejected until the first is closed.
func (s *HoursServiceImpl) ClockIn(ctx context.Context, callerID primitive.ObjectID, input ClockInInput) (*HourRecord, error) {
	emp, err := s.resolveEmployee(ctx, callerID, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	if open, err := s.HoursRepo.FindOpenByEmployee(ctx, emp.ID); err == nil && open != nil {
		return nil, apperr.Conflict("employee already clocked in at %s", open.ClockIn.Format(time.RFC3339))
	} else if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	now := time.Now()
	record := &HourRecord{
		ID:         primitive.NewObjectID(),
		EmployeeID: emp.ID,
		StoreID:    emp.StoreID,
		ClockIn:    now,
		Status:     StatusPending,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.HoursRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.Logger.Info("employee clocked in",
		zap.String("employee_id", emp.ID.Hex()),
		zap.String("record_id", record.ID.Hex()))

	s.enrich(ctx, record)
	return record, nil
}

func (s *HoursServiceImpl) ClockOut(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*HourRecord, error) {
	emp, err := s.resolveEmployee(ctx, callerID, employeeID)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindOpenByEmployee(ctx, emp.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Conflict("employee is not clocked in")
		}
		return nil, err
	}

	now := time.Now()
	if idx := record.OpenBreak(); idx >= 0 {
		record.Breaks[idx].EndedAt = now
	}
	record.ClockOut = &now
	record.TotalMinutes = record.WorkedMinutes()
	record.UpdatedAt = now

	if err := s.HoursRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.Logger.Info("employee clocked out",
		zap.String("employee_id", emp.ID.Hex()),
		zap.Int64("total_minutes", record.TotalMinutes))

	s.enrich(ctx, record)
	return record, nil
}

func (s *HoursServiceImpl) StartBreak(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*HourRecord, error) {
	emp, err := s.resolveEmployee(ctx, callerID, employeeID)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindOpenByEmployee(ctx, emp.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Conflict("employee is not clocked in")
		}
		return nil, err
	}
	if record.OpenBreak() >= 0 {
		return nil, apperr.Conflict("a break is already in progress")
	}

	now := time.Now()
	record.Breaks = append(record.Breaks, Break{StartedAt: now})
	record.UpdatedAt = now

	if err := s.HoursRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.enrich(ctx, record)
	return record, nil
}

func (s *HoursServiceImpl) EndBreak(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*HourRecord, error) {
	emp, err := s.resolveEmployee(ctx, callerID, employeeID)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindOpenByEmployee(ctx, emp.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Conflict("employee is not clocked in")
		}
		return nil, err
	}

	idx := record.OpenBreak()
	if idx < 0 {
		return nil, apperr.Conflict("no break in progress")
	}

	now := time.Now()
	record.Breaks[idx].EndedAt = now
	record.UpdatedAt = now

	if err := s.HoursRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.enrich(ctx, record)
	return record, nil
}

// UpdateHours corrects the timestamps or notes of a record that has not been
// approved yet.
func (s *HoursServiceImpl) UpdateHours(ctx context.Context, id string, input UpdateHoursInput) (*HourRecord, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if record.Status == StatusApproved {
		return nil, apperr.Conflict("approved hour records cannot be edited")
	}

	if input.ClockIn != nil {
		record.ClockIn = *input.ClockIn
	}
	if input.ClockOut != nil {
		record.ClockOut = input.ClockOut
	}
	if record.ClockOut != nil {
		if !record.ClockOut.After(record.ClockIn) {
			return nil, apperr.Validation("clock_out must be after clock_in")
		}
		record.TotalMinutes = record.WorkedMinutes()
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}
	record.UpdatedAt = time.Now()

	if err := s.HoursRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.enrich(ctx, record)
	return record, nil
}

// ApproveHours moves a pending, closed record to approved. Approved records
// are immutable afterwards.
func (s *HoursServiceImpl) ApproveHours(ctx context.Context, approverID primitive.ObjectID, id string) (*HourRecord, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if record.Status != StatusPending {
		return nil, apperr.Conflict("cannot approve hour record in status %q", record.Status)
	}
	if record.ClockOut == nil {
		return nil, apperr.Conflict("cannot approve an hour record without a clock-out")
	}

	record.Status = StatusApproved
	record.ApprovedBy = &approverID
	record.UpdatedAt = time.Now()

	if err := s.HoursRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.enrich(ctx, record)
	return record, nil
}

func (s *HoursServiceImpl) RejectHours(ctx context.Context, approverID primitive.ObjectID, id string, reason string) (*HourRecord, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	record, err := s.HoursRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if record.Status != StatusPending {
		return nil, apperr.Conflict("cannot reject hour record in status %q", record.Status)
	}

	record.Status = StatusRejected
	record.ApprovedBy = &approverID
	// Reviewer feedback lives apart from the employee's own notes.
	record.ReviewNotes = reason
	record.UpdatedAt = time.Now()

	if err := s.HoursRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.enrich(ctx, record)
	return record, nil
}

func (s *HoursServiceImpl) DeleteHours(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	record, err := s.HoursRepo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if record.Status == StatusApproved {
		return apperr.Conflict("approved hour records cannot be deleted")
	}

	return s.HoursRepo.Delete(ctx, oid)
}

// AutoClockOut closes every open record whose clock-in is older than the
// given duration. Used by the background scheduler for forgotten clock-outs.
func (s *HoursServiceImpl) AutoClockOut(ctx context.Context, olderThan time.Duration) (int, error) {
	records, err := s.HoursRepo.FindAllOpen(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	closed := 0
	for i := range records {
		record := &records[i]
		if record.ClockIn.After(cutoff) {
			continue
		}

		now := time.Now()
		if idx := record.OpenBreak(); idx >= 0 {
			record.Breaks[idx].EndedAt = now
		}
		record.ClockOut = &now
		record.TotalMinutes = record.WorkedMinutes()
		record.Notes = "auto clock-out"
		record.UpdatedAt = now

		if err := s.HoursRepo.Update(ctx, record); err != nil {
			s.Logger.Error("auto clock-out failed",
				zap.String("record_id", record.ID.Hex()),
				zap.Error(err))
			continue
		}
		closed++
	}

	return closed, nil
}

// resolveEmployee maps the caller to an employee. An explicit employee id is
// honored only for callers with the update permission; everyone else acts on
// their own employee record.
func (s *HoursServiceImpl) resolveEmployee(ctx context.Context, callerID primitive.ObjectID, employeeID string) (*employee.Employee, error) {
	if employeeID != "" {
		allowed, err := s.Perms.HasPermission(ctx, callerID.Hex(), "hours:update")
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

// canAccess reports whether the caller is the record's own employee or the
// manager of that employee's store.
func (s *HoursServiceImpl) canAccess(ctx context.Context, callerID primitive.ObjectID, employeeID primitive.ObjectID) bool {
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

func (s *HoursServiceImpl) enrich(ctx context.Context, record *HourRecord) {
	emp, err := s.EmployeeRepo.FindByID(ctx, record.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	if usr, err := s.UserRepo.FindByID(ctx, *emp.UserID); err == nil {
		record.EmployeeName = usr.FullName
	}
}
