package payment

import (
	"context"
	"testing"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/employee"
	"go-wfm/internal/features/timesheet"
	"go-wfm/internal/features/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakePaymentRepo struct {
	payments map[primitive.ObjectID]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[primitive.ObjectID]*Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *Payment) error {
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Payment, error) {
	if p, ok := f.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFound("payment %s not found", id.Hex())
}

func (f *fakePaymentRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]Payment, int64, error) {
	var out []Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, p *Payment) error {
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.payments, id)
	return nil
}

type fakeTimesheetRepo struct {
	sheets map[primitive.ObjectID]*timesheet.Timesheet
	order  []primitive.ObjectID
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{sheets: map[primitive.ObjectID]*timesheet.Timesheet{}}
}

func (f *fakeTimesheetRepo) add(sheet *timesheet.Timesheet) {
	f.sheets[sheet.ID] = sheet
	f.order = append(f.order, sheet.ID)
}

func (f *fakeTimesheetRepo) Create(ctx context.Context, s *timesheet.Timesheet) error {
	f.add(s)
	return nil
}

func (f *fakeTimesheetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*timesheet.Timesheet, error) {
	if s, ok := f.sheets[id]; ok {
		return s, nil
	}
	return nil, apperr.NotFound("timesheet %s not found", id.Hex())
}

func (f *fakeTimesheetRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int64) ([]timesheet.Timesheet, int64, error) {
	return nil, 0, nil
}

func (f *fakeTimesheetRepo) FindApprovedUnpaid(ctx context.Context, periodStart, periodEnd time.Time) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, id := range f.order {
		s := f.sheets[id]
		if s.Status != timesheet.StatusApproved || s.PaymentID != nil {
			continue
		}
		if s.PeriodStart.Before(periodStart) || s.PeriodEnd.After(periodEnd) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeTimesheetRepo) Update(ctx context.Context, s *timesheet.Timesheet) error { return nil }

func (f *fakeTimesheetRepo) SetPayment(ctx context.Context, id primitive.ObjectID, paymentID *primitive.ObjectID) error {
	if s, ok := f.sheets[id]; ok {
		s.PaymentID = paymentID
	}
	return nil
}

func (f *fakeTimesheetRepo) ClearPayment(ctx context.Context, paymentID primitive.ObjectID) error {
	for _, s := range f.sheets {
		if s.PaymentID != nil && *s.PaymentID == paymentID {
			s.PaymentID = nil
		}
	}
	return nil
}

func (f *fakeTimesheetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.sheets, id)
	return nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*employee.Employee, error) {
	return nil, apperr.NotFound("employee %s not found", id.Hex())
}
func (f *fakeEmployeeRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*employee.Employee, error) {
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

type fakePerms struct{}

func (f *fakePerms) HasPermission(ctx context.Context, userID string, permission string) (bool, error) {
	return true, nil
}

func newTestService() (*PaymentServiceImpl, *fakePaymentRepo, *fakeTimesheetRepo) {
	paymentRepo := newFakePaymentRepo()
	sheetRepo := newFakeTimesheetRepo()
	svc := &PaymentServiceImpl{
		PaymentRepo:   paymentRepo,
		TimesheetRepo: sheetRepo,
		EmployeeRepo:  &fakeEmployeeRepo{},
		UserRepo:      &fakeUserRepo{},
		Perms:         &fakePerms{},
		Logger:        zap.NewNop(),
	}
	return svc, paymentRepo, sheetRepo
}

func approvedSheet(employeeID primitive.ObjectID, start, end time.Time, hours, rate float64) *timesheet.Timesheet {
	return &timesheet.Timesheet{
		ID:          primitive.NewObjectID(),
		EmployeeID:  employeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		TotalHours:  hours,
		HourlyRate:  rate,
		Status:      timesheet.StatusApproved,
	}
}

func TestGeneratePaymentsGroupsByEmployee(t *testing.T) {
	svc, _, sheetRepo := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	mid := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	// Alice has two sheets; her rate changed mid-period, the later one wins.
	sheetRepo.add(approvedSheet(alice, start, mid, 40, 15.50))
	sheetRepo.add(approvedSheet(alice, mid, end, 35.5, 16.00))
	sheetRepo.add(approvedSheet(bob, start, end, 20, 12.00))

	// Draft sheets and already-paid sheets must be skipped.
	draft := approvedSheet(alice, start, end, 99, 15.50)
	draft.Status = timesheet.StatusDraft
	sheetRepo.add(draft)

	existing := primitive.NewObjectID()
	paid := approvedSheet(bob, start, end, 50, 12.00)
	paid.PaymentID = &existing
	sheetRepo.add(paid)

	payments, err := svc.GeneratePayments(ctx, GenerateInput{PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)
	require.Len(t, payments, 2)

	byEmployee := map[primitive.ObjectID]Payment{}
	for _, p := range payments {
		byEmployee[p.EmployeeID] = p
	}

	alicePay := byEmployee[alice]
	assert.Equal(t, 75.5, alicePay.TotalHours)
	assert.Equal(t, 16.00, alicePay.HourlyRate)
	assert.Equal(t, 1208.00, alicePay.Amount)
	assert.Equal(t, StatusPending, alicePay.Status)
	assert.Len(t, alicePay.TimesheetIDs, 2)

	bobPay := byEmployee[bob]
	assert.Equal(t, 20.0, bobPay.TotalHours)
	assert.Equal(t, 240.00, bobPay.Amount)

	// Every covered sheet must be linked back to its payment.
	for _, id := range alicePay.TimesheetIDs {
		sheet := sheetRepo.sheets[id]
		require.NotNil(t, sheet.PaymentID)
		assert.Equal(t, alicePay.ID, *sheet.PaymentID)
	}

	// A second run finds nothing left to pay.
	again, err := svc.GeneratePayments(ctx, GenerateInput{PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestTransitionPaymentFollowsGraph(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	p := &Payment{ID: primitive.NewObjectID(), Status: StatusPending}
	require.NoError(t, repo.Create(ctx, p))
	id := p.ID.Hex()

	paid, err := svc.TransitionPayment(ctx, id, StatusPaid)
	require.NoError(t, err)
	assert.NotNil(t, paid.PaidAt)

	_, err = svc.TransitionPayment(ctx, id, StatusCancelled)
	require.Error(t, err, "paid payments cannot be cancelled directly")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.TransitionPayment(ctx, id, StatusDisputed)
	require.NoError(t, err)

	_, err = svc.TransitionPayment(ctx, id, StatusCancelled)
	require.NoError(t, err)

	reopened, err := svc.TransitionPayment(ctx, id, StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, reopened.Status)
	assert.Nil(t, reopened.PaidAt, "reopening must clear the payment date")

	_, err = svc.TransitionPayment(ctx, id, "refunded")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Paid again and confirmed: the confirmation date is recorded and the
	// payment becomes terminal.
	_, err = svc.TransitionPayment(ctx, id, StatusPaid)
	require.NoError(t, err)
	confirmed, err := svc.TransitionPayment(ctx, id, StatusConfirmed)
	require.NoError(t, err)
	assert.NotNil(t, confirmed.ConfirmedAt)

	_, err = svc.TransitionPayment(ctx, id, StatusDisputed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestDeletePaymentDetachesTimesheets(t *testing.T) {
	svc, repo, sheetRepo := newTestService()
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	emp := primitive.NewObjectID()
	sheetRepo.add(approvedSheet(emp, start, end, 10, 10))

	payments, err := svc.GeneratePayments(ctx, GenerateInput{PeriodStart: start, PeriodEnd: end})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	id := payments[0].ID

	// Paid payments are not deletable.
	_, err = svc.TransitionPayment(ctx, id.Hex(), StatusPaid)
	require.NoError(t, err)
	err = svc.DeletePayment(ctx, id.Hex())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Disputed then cancelled is deletable, and the sheets come free again.
	_, err = svc.TransitionPayment(ctx, id.Hex(), StatusDisputed)
	require.NoError(t, err)
	_, err = svc.TransitionPayment(ctx, id.Hex(), StatusCancelled)
	require.NoError(t, err)
	require.NoError(t, svc.DeletePayment(ctx, id.Hex()))

	_, ok := repo.payments[id]
	assert.False(t, ok)
	for _, s := range sheetRepo.sheets {
		assert.Nil(t, s.PaymentID)
	}
}
