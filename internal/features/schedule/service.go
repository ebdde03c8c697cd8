package schedule

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/store"
	"go-wfm/internal/features/user"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListFilter struct {
	StoreID       string
	WeekStartFrom *time.Time
	WeekStartTo   *time.Time
}

type ShiftInput struct {
	EmployeeID string
	Day        string
	StartTime  string
	EndTime    string
	Notes      string
}

type CreateScheduleInput struct {
	StoreID       string
	Title         string
	WeekStartDate time.Time
	WeekEndDate   time.Time
	Shifts        []ShiftInput
}

type UpdateScheduleInput struct {
	Title         *string
	WeekStartDate *time.Time
	WeekEndDate   *time.Time
}

type ScheduleService interface {
	ListSchedules(ctx context.Context, filter ListFilter, page, limit int64) ([]Schedule, int64, error)
	GetSchedule(ctx context.Context, id string) (*Schedule, error)
	CreateSchedule(ctx context.Context, input CreateScheduleInput) (*Schedule, error)
	UpdateSchedule(ctx context.Context, id string, input UpdateScheduleInput) (*Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	AddShift(ctx context.Context, scheduleID string, input ShiftInput) (*Schedule, error)
	UpdateShift(ctx context.Context, scheduleID, shiftID string, input ShiftInput) (*Schedule, error)
	RemoveShift(ctx context.Context, scheduleID, shiftID string) (*Schedule, error)
}

type ScheduleServiceImpl struct {
	ScheduleRepo ScheduleRepository
	StoreRepo    store.StoreRepository
	EmployeeRepo employee.EmployeeRepository
	UserRepo     user.UserRepository
}

func NewScheduleService(scheduleRepo ScheduleRepository, storeRepo store.StoreRepository, employeeRepo employee.EmployeeRepository, userRepo user.UserRepository) ScheduleService {
	return &ScheduleServiceImpl{
		ScheduleRepo: scheduleRepo,
		StoreRepo:    storeRepo,
		EmployeeRepo: employeeRepo,
		UserRepo:     userRepo,
	}
}

func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filter ListFilter, page, limit int64) ([]Schedule, int64, error) {
	query := map[string]interface{}{}
	if filter.StoreID != "" {
		oid, err := utils.ParseID(filter.StoreID)
		if err != nil {
			return nil, 0, err
		}
		query["store_id"] = oid
	}
	dateRange := map[string]interface{}{}
	if filter.WeekStartFrom != nil {
		dateRange["$gte"] = *filter.WeekStartFrom
	}
	if filter.WeekStartTo != nil {
		dateRange["$lte"] = *filter.WeekStartTo
	}
	if len(dateRange) > 0 {
		query["week_start_date"] = dateRange
	}

	offset := (page - 1) * limit
	schedules, total, err := s.ScheduleRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range schedules {
		s.enrich(ctx, &schedules[i])
	}
	return schedules, total, nil
}

func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	schedule, err := s.ScheduleRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	s.enrich(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, input CreateScheduleInput) (*Schedule, error) {
	storeID, err := utils.ParseID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if _, err := s.StoreRepo.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	if input.WeekStartDate.IsZero() {
		return nil, apperr.Validation("week_start_date is required")
	}

	weekEnd := input.WeekEndDate
	if weekEnd.IsZero() {
		weekEnd = input.WeekStartDate.AddDate(0, 0, 6)
	}

	shifts := make([]Shift, 0, len(input.Shifts))
	for _, in := range input.Shifts {
		shift, err := s.buildShift(ctx, in)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}

	now := time.Now()
	schedule := &Schedule{
		ID:            primitive.NewObjectID(),
		StoreID:       storeID,
		Title:         input.Title,
		WeekStartDate: input.WeekStartDate,
		WeekEndDate:   weekEnd,
		Shifts:        shifts,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.ScheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	s.enrich(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleServiceImpl) UpdateSchedule(ctx context.Context, id string, input UpdateScheduleInput) (*Schedule, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	schedule, err := s.ScheduleRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		schedule.Title = *input.Title
	}
	if input.WeekStartDate != nil {
		schedule.WeekStartDate = *input.WeekStartDate
		// Keep the derived end date consistent unless explicitly overridden.
		if input.WeekEndDate == nil {
			schedule.WeekEndDate = input.WeekStartDate.AddDate(0, 0, 6)
		}
	}
	if input.WeekEndDate != nil {
		schedule.WeekEndDate = *input.WeekEndDate
	}
	if !schedule.WeekEndDate.After(schedule.WeekStartDate) {
		return nil, apperr.Validation("week_end_date must be after week_start_date")
	}

	schedule.UpdatedAt = time.Now()
	if err := s.ScheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	s.enrich(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	if _, err := s.ScheduleRepo.FindByID(ctx, oid); err != nil {
		return err
	}

	return s.ScheduleRepo.Delete(ctx, oid)
}

func (s *ScheduleServiceImpl) AddShift(ctx context.Context, scheduleID string, input ShiftInput) (*Schedule, error) {
	oid, err := utils.ParseID(scheduleID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.ScheduleRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	shift, err := s.buildShift(ctx, input)
	if err != nil {
		return nil, err
	}

	schedule.Shifts = append(schedule.Shifts, *shift)
	schedule.UpdatedAt = time.Now()
	if err := s.ScheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	s.enrich(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleServiceImpl) UpdateShift(ctx context.Context, scheduleID, shiftID string, input ShiftInput) (*Schedule, error) {
	oid, err := utils.ParseID(scheduleID)
	if err != nil {
		return nil, err
	}
	sid, err := utils.ParseID(shiftID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.ScheduleRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range schedule.Shifts {
		if schedule.Shifts[i].ID == sid {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperr.NotFound("shift %s not found in schedule %s", shiftID, scheduleID)
	}

	shift, err := s.buildShift(ctx, input)
	if err != nil {
		return nil, err
	}
	shift.ID = sid
	schedule.Shifts[idx] = *shift

	schedule.UpdatedAt = time.Now()
	if err := s.ScheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	s.enrich(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleServiceImpl) RemoveShift(ctx context.Context, scheduleID, shiftID string) (*Schedule, error) {
	oid, err := utils.ParseID(scheduleID)
	if err != nil {
		return nil, err
	}
	sid, err := utils.ParseID(shiftID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.ScheduleRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	kept := schedule.Shifts[:0]
	found := false
	for _, shift := range schedule.Shifts {
		if shift.ID == sid {
			found = true
			continue
		}
		kept = append(kept, shift)
	}
	if !found {
		return nil, apperr.NotFound("shift %s not found in schedule %s", shiftID, scheduleID)
	}
	schedule.Shifts = kept

	schedule.UpdatedAt = time.Now()
	if err := s.ScheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	s.enrich(ctx, schedule)
	return schedule, nil
}

func (s *ScheduleServiceImpl) buildShift(ctx context.Context, input ShiftInput) (*Shift, error) {
	if err := ValidateShiftDay(input.Day); err != nil {
		return nil, err
	}
	if err := ValidateShiftTimes(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	employeeID, err := utils.ParseID(input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.EmployeeRepo.FindByID(ctx, employeeID); err != nil {
		return nil, err
	}

	return &Shift{
		ID:         primitive.NewObjectID(),
		EmployeeID: employeeID,
		Day:        input.Day,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Notes:      input.Notes,
	}, nil
}

func (s *ScheduleServiceImpl) enrich(ctx context.Context, schedule *Schedule) {
	if st, err := s.StoreRepo.FindByID(ctx, schedule.StoreID); err == nil {
		schedule.StoreName = st.Name
	}

	for i := range schedule.Shifts {
		emp, err := s.EmployeeRepo.FindByID(ctx, schedule.Shifts[i].EmployeeID)
		if err != nil || emp.UserID == nil {
			continue
		}
		if usr, err := s.UserRepo.FindByID(ctx, *emp.UserID); err == nil {
			schedule.Shifts[i].EmployeeName = usr.FullName
		}
	}
}
