package hours

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
	"go.uber.org/zap"
)

type fakeHoursRepo struct {
	records map[primitive.ObjectID]*HourRecord
}

func newFakeHoursRepo() *fakeHoursRepo {
	return &fakeHoursRepo{records: map[primitive.ObjectID]*HourRecord{}}
}

func (f *fakeHoursRepo) Create(ctx context.Context, record *HourRecord) error {
	cp := *record
	f.records[record.ID] = &cp
	return nil
}

func (f *fakeHoursRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*HourRecord, error) {
	if r, ok := f.records[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, apperr.NotFound("hour record %s not found", id.Hex())
}

func (f *fakeHoursRepo) FindOpenByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*HourRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.ClockOut == nil {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("no open hour record for employee %s", employeeID.Hex())
}

func (f *fakeHoursRepo) FindAllOpen(ctx context.Context) ([]HourRecord, error) {
	var out []HourRecord
	for _, r := range f.records {
		if r.ClockOut == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeHoursRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]HourRecord, int64, error) {
	var out []HourRecord
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeHoursRepo) Update(ctx context.Context, record *HourRecord) error {
	cp := *record
	f.records[record.ID] = &cp
	return nil
}

func (f *fakeHoursRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.records, id)
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

type fakeUserRepo struct {
	users map[primitive.ObjectID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user %s not found", id.Hex())
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, apperr.NotFound("user %s not found", email)
}

func (f *fakeUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}
func (f *fakeUserRepo) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return 0, nil
}

type fakePerms struct {
	granted map[string]bool
}

func (f *fakePerms) HasPermission(ctx context.Context, userID string, permission string) (bool, error) {
	return f.granted[permission], nil
}

func newTestService(t *testing.T) (*HoursServiceImpl, *fakeHoursRepo, primitive.ObjectID, primitive.ObjectID) {
	t.Helper()

	userID := primitive.NewObjectID()
	empID := primitive.NewObjectID()

	hoursRepo := newFakeHoursRepo()
	empRepo := &fakeEmployeeRepo{employees: map[primitive.ObjectID]*employee.Employee{
		empID: {ID: empID, UserID: &userID, HourlyRate: 15.50},
	}}
	userRepo := &fakeUserRepo{users: map[primitive.ObjectID]*user.User{
		userID: {ID: userID, FullName: "Jess Doe"},
	}}

	svc := &HoursServiceImpl{
		HoursRepo:    hoursRepo,
		EmployeeRepo: empRepo,
		UserRepo:     userRepo,
		Perms:        &fakePerms{granted: map[string]bool{}},
		Logger:       zap.NewNop(),
	}
	return svc, hoursRepo, userID, empID
}

func TestClockInRejectsSecondOpenRecord(t *testing.T) {
	svc, _, userID, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.ClockIn(ctx, userID, ClockInInput{})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)
	assert.Nil(t, first.ClockOut)

	_, err = svc.ClockIn(ctx, userID, ClockInInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestClockOutClosesRecordAndDerivesMinutes(t *testing.T) {
	svc, repo, userID, empID := newTestService(t)
	ctx := context.Background()

	record, err := svc.ClockIn(ctx, userID, ClockInInput{})
	require.NoError(t, err)

	// Backdate the clock-in so worked minutes are non-zero.
	stored := repo.records[record.ID]
	stored.ClockIn = time.Now().Add(-2 * time.Hour)

	closed, err := svc.ClockOut(ctx, userID, "")
	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	assert.Equal(t, empID, closed.EmployeeID)
	assert.InDelta(t, 120, closed.TotalMinutes, 1)

	_, err = svc.ClockOut(ctx, userID, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestBreakLifecycle(t *testing.T) {
	svc, _, userID, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.StartBreak(ctx, userID, "")
	require.Error(t, err, "break without clock-in must fail")

	_, err = svc.ClockIn(ctx, userID, ClockInInput{})
	require.NoError(t, err)

	record, err := svc.StartBreak(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, record.Breaks, 1)

	_, err = svc.StartBreak(ctx, userID, "")
	require.Error(t, err, "double break must fail")

	record, err = svc.EndBreak(ctx, userID, "")
	require.NoError(t, err)
	assert.False(t, record.Breaks[0].EndedAt.IsZero())

	_, err = svc.EndBreak(ctx, userID, "")
	require.Error(t, err, "ending a break twice must fail")
}

func TestApproveRequiresClosedPendingRecord(t *testing.T) {
	svc, repo, userID, _ := newTestService(t)
	ctx := context.Background()
	approver := primitive.NewObjectID()

	open, err := svc.ClockIn(ctx, userID, ClockInInput{})
	require.NoError(t, err)

	_, err = svc.ApproveHours(ctx, approver, open.ID.Hex())
	require.Error(t, err, "open record must not be approvable")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.ClockOut(ctx, userID, "")
	require.NoError(t, err)

	approved, err := svc.ApproveHours(ctx, approver, open.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approver, *approved.ApprovedBy)

	// Approved records are immutable and cannot be deleted.
	notes := "late correction"
	_, err = svc.UpdateHours(ctx, open.ID.Hex(), UpdateHoursInput{Notes: &notes})
	require.Error(t, err)
	_, err = svc.ApproveHours(ctx, approver, open.ID.Hex())
	require.Error(t, err)
	_, err = svc.RejectHours(ctx, approver, open.ID.Hex(), "")
	require.Error(t, err)
	err = svc.DeleteHours(ctx, open.ID.Hex())
	require.Error(t, err)

	_, ok := repo.records[open.ID]
	assert.True(t, ok, "record must survive the failed delete")
}

func TestRejectKeepsEmployeeNotes(t *testing.T) {
	svc, _, userID, _ := newTestService(t)
	ctx := context.Background()
	approver := primitive.NewObjectID()

	record, err := svc.ClockIn(ctx, userID, ClockInInput{Notes: "forgot badge, clocked in late"})
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, userID, "")
	require.NoError(t, err)

	rejected, err := svc.RejectHours(ctx, approver, record.ID.Hex(), "overlaps the approved shift")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "forgot badge, clocked in late", rejected.Notes)
	assert.Equal(t, "overlaps the approved shift", rejected.ReviewNotes)
}

func TestAutoClockOutClosesOnlyStaleRecords(t *testing.T) {
	svc, repo, userID, _ := newTestService(t)
	ctx := context.Background()

	record, err := svc.ClockIn(ctx, userID, ClockInInput{})
	require.NoError(t, err)

	// Fresh record stays open.
	closed, err := svc.AutoClockOut(ctx, 16*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, closed)

	repo.records[record.ID].ClockIn = time.Now().Add(-20 * time.Hour)

	closed, err = svc.AutoClockOut(ctx, 16*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.NotNil(t, repo.records[record.ID].ClockOut)
}
