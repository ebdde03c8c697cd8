package timesheet

import (
	"context"
	"testing"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTimesheetRepo struct {
	sheets map[primitive.ObjectID]*Timesheet
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{sheets: map[primitive.ObjectID]*Timesheet{}}
}

func (f *fakeTimesheetRepo) Create(ctx context.Context, s *Timesheet) error {
	cp := *s
	f.sheets[s.ID] = &cp
	return nil
}

func (f *fakeTimesheetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Timesheet, error) {
	if s, ok := f.sheets[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, apperr.NotFound("timesheet %s not found", id.Hex())
}

func (f *fakeTimesheetRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Timesheet, int64, error) {
	var out []Timesheet
	for _, s := range f.sheets {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimesheetRepo) FindApprovedUnpaid(ctx context.Context, periodStart, periodEnd time.Time) ([]Timesheet, error) {
	return nil, nil
}

func (f *fakeTimesheetRepo) Update(ctx context.Context, s *Timesheet) error {
	cp := *s
	f.sheets[s.ID] = &cp
	return nil
}

func (f *fakeTimesheetRepo) SetPayment(ctx context.Context, id primitive.ObjectID, paymentID *primitive.ObjectID) error {
	if s, ok := f.sheets[id]; ok {
		s.PaymentID = paymentID
	}
	return nil
}

func (f *fakeTimesheetRepo) ClearPayment(ctx context.Context, paymentID primitive.ObjectID) error {
	return nil
}

func (f *fakeTimesheetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.sheets, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[primitive.ObjectID]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, apperr.NotFound("employee %s not found", id.Hex())
}
func (f *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*employee.Employee, error) {
	for _, e := range f.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return nil, apperr.NotFound("no employee for user %s", userID.Hex())
}
func (f *fakeEmployeeRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, emp *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id primitive.ObjectID) error  { return nil }

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	return nil, apperr.NotFound("user %s not found", id.Hex())
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, apperr.NotFound("user %s not found", email)
}
func (f *fakeUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]user.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error          { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (f *fakeUserRepo) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return 0, nil
}

type fakePerms struct {
	granted map[string]bool
}

func (f *fakePerms) HasPermission(ctx context.Context, userID string, permission string) (bool, error) {
	return f.granted[permission], nil
}

func newTestService() (*TimesheetServiceImpl, *fakeTimesheetRepo, primitive.ObjectID) {
	userID := primitive.NewObjectID()
	empID := primitive.NewObjectID()

	repo := newFakeTimesheetRepo()
	svc := &TimesheetServiceImpl{
		TimesheetRepo: repo,
		EmployeeRepo: &fakeEmployeeRepo{employees: map[primitive.ObjectID]*employee.Employee{
			empID: {ID: empID, UserID: &userID, HourlyRate: 15.50},
		}},
		UserRepo: &fakeUserRepo{},
		Perms:    &fakePerms{},
	}
	return svc, repo, userID
}

func TestCreateTimesheetCapturesRateAndTotals(t *testing.T) {
	svc, _, userID := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sheet, err := svc.CreateTimesheet(ctx, userID, CreateTimesheetInput{
		PeriodStart: start,
		PeriodEnd:   end,
		DailyHours:  map[string]float64{"monday": 8, "tuesday": 7.5},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, sheet.Status)
	assert.Equal(t, 15.50, sheet.HourlyRate)
	assert.Equal(t, 15.5, sheet.TotalHours)
	assert.Equal(t, 240.25, sheet.TotalEarnings)
}

func TestSubmitApproveRejectFlow(t *testing.T) {
	svc, _, userID := newTestService()
	ctx := context.Background()
	reviewer := primitive.NewObjectID()

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sheet, err := svc.CreateTimesheet(ctx, userID, CreateTimesheetInput{
		PeriodStart: start,
		PeriodEnd:   end,
		Notes:       "regular week",
	})
	require.NoError(t, err)
	id := sheet.ID.Hex()

	// Draft cannot be approved directly.
	_, err = svc.ApproveTimesheet(ctx, reviewer, id)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	submitted, err := svc.SubmitTimesheet(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	// Submitted sheets cannot be edited.
	_, err = svc.UpdateDailyHours(ctx, userID, id, map[string]float64{"monday": 8})
	require.Error(t, err)

	rejected, err := svc.RejectTimesheet(ctx, reviewer, id, "missing tuesday")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "missing tuesday", rejected.ReviewNotes)
	assert.Equal(t, "regular week", rejected.Notes, "rejection must not overwrite the employee's notes")

	// Rejected sheets can be fixed and resubmitted.
	_, err = svc.UpdateDailyHours(ctx, userID, id, map[string]float64{"monday": 8})
	require.NoError(t, err)
	_, err = svc.SubmitTimesheet(ctx, userID, id)
	require.NoError(t, err)

	approved, err := svc.ApproveTimesheet(ctx, reviewer, id)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.Empty(t, approved.ReviewNotes, "approval clears the old rejection reason")

	// Approved is terminal.
	_, err = svc.SubmitTimesheet(ctx, userID, id)
	require.Error(t, err)
	_, err = svc.RejectTimesheet(ctx, reviewer, id, "")
	require.Error(t, err)
}

func TestDeleteTimesheetGating(t *testing.T) {
	svc, repo, userID := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sheet, err := svc.CreateTimesheet(ctx, userID, CreateTimesheetInput{PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)
	id := sheet.ID.Hex()

	// A draft linked to a payment must not be deletable.
	paymentID := primitive.NewObjectID()
	repo.sheets[sheet.ID].PaymentID = &paymentID
	err = svc.DeleteTimesheet(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	repo.sheets[sheet.ID].PaymentID = nil
	require.NoError(t, svc.DeleteTimesheet(ctx, id))
	assert.Empty(t, repo.sheets)
}

func TestUpdateDailyHoursValidatesRange(t *testing.T) {
	svc, _, userID := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sheet, err := svc.CreateTimesheet(ctx, userID, CreateTimesheetInput{PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)

	_, err = svc.UpdateDailyHours(ctx, userID, sheet.ID.Hex(), map[string]float64{"monday": 25})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	updated, err := svc.UpdateDailyHours(ctx, userID, sheet.ID.Hex(), map[string]float64{"tuesday": 6})
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.TotalHours)
	assert.Equal(t, 93.0, updated.TotalEarnings)
}

// Two employees without the timesheets area permissions, matching the seeded
// Employee role. Each must be confined to their own sheets.
func TestOwnershipConfinesEmployeesToOwnSheets(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	empA := primitive.NewObjectID()
	empB := primitive.NewObjectID()

	repo := newFakeTimesheetRepo()
	svc := &TimesheetServiceImpl{
		TimesheetRepo: repo,
		EmployeeRepo: &fakeEmployeeRepo{employees: map[primitive.ObjectID]*employee.Employee{
			empA: {ID: empA, UserID: &userA, HourlyRate: 15.50},
			empB: {ID: empB, UserID: &userB, HourlyRate: 12.00},
		}},
		UserRepo: &fakeUserRepo{},
		Perms:    &fakePerms{},
	}
	ctx := context.Background()

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sheet, err := svc.CreateTimesheet(ctx, userA, CreateTimesheetInput{
		PeriodStart: start,
		PeriodEnd:   end,
		DailyHours:  map[string]float64{"monday": 8},
	})
	require.NoError(t, err)
	id := sheet.ID.Hex()

	_, err = svc.GetTimesheet(ctx, userB, id)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.UpdateDailyHours(ctx, userB, id, map[string]float64{"monday": 0})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	weekNotes := "swapped shifts with Dana"
	_, err = svc.UpdateTimesheet(ctx, userB, id, UpdateTimesheetInput{Notes: &weekNotes})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.SubmitTimesheet(ctx, userB, id)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// The owner keeps full access and the sheet is untouched.
	got, err := svc.GetTimesheet(ctx, userA, id)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.TotalHours)

	_, err = svc.UpdateTimesheet(ctx, userA, id, UpdateTimesheetInput{Notes: &weekNotes})
	require.NoError(t, err)
}
