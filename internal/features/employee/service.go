package employee

import (
	"context"
	"time"

	"go-wfm/internal/common/apperr"
	"go-wfm/internal/features/store"
	"go-wfm/internal/features/user"
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ListFilter struct {
	Search  string // case-insensitive substring on position
	Status  string
	StoreID string
}

// NewUserInput creates a login account together with the employee record.
type NewUserInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

type CreateEmployeeInput struct {
	UserID                string
	NewUser               *NewUserInput
	Position              string
	HourlyRate            float64
	EmploymentStatus      string
	StoreID               string
	HireDate              time.Time
	EmergencyContactName  string
	EmergencyContactPhone string
}

type UpdateEmployeeInput struct {
	UserID                *string
	Position              *string
	HourlyRate            *float64
	EmploymentStatus      *string
	StoreID               *string
	HireDate              *time.Time
	EmergencyContactName  *string
	EmergencyContactPhone *string
}

type EmployeeService interface {
	ListEmployees(ctx context.Context, filter ListFilter, page, limit int64) ([]Employee, int64, error)
	GetEmployee(ctx context.Context, callerID, id string) (*Employee, error)
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, id string, input UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

type EmployeeServiceImpl struct {
	EmployeeRepo EmployeeRepository
	UserRepo     user.UserRepository
	UserService  user.UserService
	StoreRepo    store.StoreRepository
	Perms        middleware.PermissionService
	Logger       *zap.Logger
}

func NewEmployeeService(employeeRepo EmployeeRepository, userRepo user.UserRepository, userService user.UserService, storeRepo store.StoreRepository, perms middleware.PermissionService, logger *zap.Logger) EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepo: employeeRepo,
		UserRepo:     userRepo,
		UserService:  userService,
		StoreRepo:    storeRepo,
		Perms:        perms,
		Logger:       logger,
	}
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter ListFilter, page, limit int64) ([]Employee, int64, error) {
	query := map[string]interface{}{}
	if filter.Search != "" {
		query["position"] = primitive.Regex{Pattern: filter.Search, Options: "i"}
	}
	if filter.Status != "" {
		if !IsValidStatus(filter.Status) {
			return nil, 0, apperr.Validation("invalid employment status %q", filter.Status)
		}
		query["employment_status"] = filter.Status
	}
	if filter.StoreID != "" {
		oid, err := utils.ParseID(filter.StoreID)
		if err != nil {
			return nil, 0, err
		}
		query["store_id"] = oid
	}

	offset := (page - 1) * limit
	employees, total, err := s.EmployeeRepo.List(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for i := range employees {
		s.enrich(ctx, &employees[i])
	}
	return employees, total, nil
}

// GetEmployee allows the caller through with employees:read, or when the
// record is the caller's own, or when the caller manages the record's store.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, callerID, id string) (*Employee, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	allowed, err := s.Perms.HasPermission(ctx, callerID, "employees:read")
	if err != nil {
		return nil, err
	}
	if !allowed && !s.isSelfOrManager(ctx, callerID, emp) {
		return nil, apperr.Forbidden("you do not have access to this employee")
	}

	s.enrich(ctx, emp)
	return emp, nil
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*Employee, error) {
	if input.HourlyRate <= 0 {
		return nil, apperr.Validation("hourly_rate must be greater than 0, got %v", input.HourlyRate)
	}
	if input.EmploymentStatus == "" {
		input.EmploymentStatus = StatusActive
	}
	if !IsValidStatus(input.EmploymentStatus) {
		return nil, apperr.Validation("invalid employment status %q", input.EmploymentStatus)
	}
	if input.UserID != "" && input.NewUser != nil {
		return nil, apperr.Validation("provide either user_id or a new user, not both")
	}

	var storeID *primitive.ObjectID
	if input.StoreID != "" {
		oid, err := utils.ParseID(input.StoreID)
		if err != nil {
			return nil, err
		}
		if _, err := s.StoreRepo.FindByID(ctx, oid); err != nil {
			return nil, err
		}
		storeID = &oid
	}

	var userID *primitive.ObjectID
	var createdUser *user.User
	if input.UserID != "" {
		oid, err := utils.ParseID(input.UserID)
		if err != nil {
			return nil, err
		}
		if _, err := s.UserRepo.FindByID(ctx, oid); err != nil {
			return nil, err
		}
		if existing, _ := s.EmployeeRepo.FindByUserID(ctx, oid); existing != nil {
			return nil, apperr.Conflict("user %s is already linked to an employee", input.UserID)
		}
		userID = &oid
	} else if input.NewUser != nil {
		created, err := s.UserService.CreateUser(ctx, user.CreateUserInput{
			Email:    input.NewUser.Email,
			Password: input.NewUser.Password,
			FullName: input.NewUser.FullName,
			Phone:    input.NewUser.Phone,
		})
		if err != nil {
			return nil, err
		}
		createdUser = created
		userID = &created.ID
	}

	hireDate := input.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now()
	}

	now := time.Now()
	emp := &Employee{
		ID:                    primitive.NewObjectID(),
		UserID:                userID,
		Position:              input.Position,
		HourlyRate:            input.HourlyRate,
		EmploymentStatus:      input.EmploymentStatus,
		StoreID:               storeID,
		HireDate:              hireDate,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.EmployeeRepo.Create(ctx, emp); err != nil {
		// Best-effort rollback of the account created above. Not atomic: a
		// failure here leaves an orphan user, which we can only log.
		if createdUser != nil {
			if delErr := s.UserRepo.Delete(ctx, createdUser.ID); delErr != nil {
				s.Logger.Error("rollback of user after failed employee insert also failed",
					zap.String("user_id", createdUser.ID.Hex()), zap.Error(delErr))
			}
		}
		return nil, err
	}

	s.enrich(ctx, emp)
	return emp, nil
}

func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, input UpdateEmployeeInput) (*Employee, error) {
	oid, err := utils.ParseID(id)
	if err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		if *input.UserID == "" {
			emp.UserID = nil
		} else {
			uid, err := utils.ParseID(*input.UserID)
			if err != nil {
				return nil, err
			}
			if _, err := s.UserRepo.FindByID(ctx, uid); err != nil {
				return nil, err
			}
			if existing, _ := s.EmployeeRepo.FindByUserID(ctx, uid); existing != nil && existing.ID != emp.ID {
				return nil, apperr.Conflict("user %s is already linked to an employee", *input.UserID)
			}
			emp.UserID = &uid
		}
	}
	if input.Position != nil {
		emp.Position = *input.Position
	}
	if input.HourlyRate != nil {
		if *input.HourlyRate <= 0 {
			return nil, apperr.Validation("hourly_rate must be greater than 0, got %v", *input.HourlyRate)
		}
		emp.HourlyRate = *input.HourlyRate
	}
	if input.EmploymentStatus != nil {
		if !IsValidStatus(*input.EmploymentStatus) {
			return nil, apperr.Validation("invalid employment status %q", *input.EmploymentStatus)
		}
		emp.EmploymentStatus = *input.EmploymentStatus
	}
	if input.StoreID != nil {
		if *input.StoreID == "" {
			emp.StoreID = nil
		} else {
			sid, err := utils.ParseID(*input.StoreID)
			if err != nil {
				return nil, err
			}
			if _, err := s.StoreRepo.FindByID(ctx, sid); err != nil {
				return nil, err
			}
			emp.StoreID = &sid
		}
	}
	if input.HireDate != nil {
		emp.HireDate = *input.HireDate
	}
	if input.EmergencyContactName != nil {
		emp.EmergencyContactName = *input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		emp.EmergencyContactPhone = *input.EmergencyContactPhone
	}

	emp.UpdatedAt = time.Now()
	if err := s.EmployeeRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	s.enrich(ctx, emp)
	return emp, nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	oid, err := utils.ParseID(id)
	if err != nil {
		return err
	}

	if _, err := s.EmployeeRepo.FindByID(ctx, oid); err != nil {
		return err
	}

	return s.EmployeeRepo.Delete(ctx, oid)
}

func (s *EmployeeServiceImpl) isSelfOrManager(ctx context.Context, callerID string, emp *Employee) bool {
	caller, err := utils.ParseID(callerID)
	if err != nil {
		return false
	}
	if emp.UserID != nil && *emp.UserID == caller {
		return true
	}
	if emp.StoreID != nil {
		if st, err := s.StoreRepo.FindByID(ctx, *emp.StoreID); err == nil {
			if st.ManagerID != nil && *st.ManagerID == caller {
				return true
			}
		}
	}
	return false
}

// enrich attaches full_name/email/phone from the linked user and store_name
// from the linked store. Lookup failures leave fields empty.
func (s *EmployeeServiceImpl) enrich(ctx context.Context, emp *Employee) {
	if emp.UserID != nil {
		if usr, err := s.UserRepo.FindByID(ctx, *emp.UserID); err == nil {
			emp.FullName = usr.FullName
			emp.Email = usr.Email
			emp.Phone = usr.Phone
		}
	}
	if emp.StoreID != nil {
		if st, err := s.StoreRepo.FindByID(ctx, *emp.StoreID); err == nil {
			emp.StoreName = st.Name
		}
	}
}
