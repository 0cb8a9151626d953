package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nqhuy-dev/task-tracker-api/internal/models"
	"github.com/nqhuy-dev/task-tracker-api/internal/pagination"
	"github.com/nqhuy-dev/task-tracker-api/internal/query"
	"github.com/nqhuy-dev/task-tracker-api/internal/repository"
	"github.com/nqhuy-dev/task-tracker-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email is already taken")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrInvalidGender        = errors.New("gender does not resolve to an existing record")
	ErrWrongEmail           = errors.New("wrong email")
	ErrWrongUsername        = errors.New("wrong username")
	ErrWrongPassword        = errors.New("wrong password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user CRUD, credential hashing and login.
type UserService struct {
	repo       *repository.Crud[models.User]
	genderRepo *repository.Crud[models.Gender]
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	return &UserService{
		repo:       repository.NewCrud[models.User](db),
		genderRepo: repository.NewCrud[models.Gender](db),
		bcryptCost: bcryptCost,
	}
}

var userSortColumns = map[string]bool{
	"id":         true,
	"username":   true,
	"email":      true,
	"name":       true,
	"phone":      true,
	"created_at": true,
	"updated_at": true,
}

// CreateUserInput represents the fields of a new user.
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	Name        string
	Phone       string
	DateOfBirth *time.Time
	GenderID    uint64
}

// UpdateUserInput represents a partial user update. Nil fields are left
// untouched; in particular a nil Password skips re-hashing entirely.
type UpdateUserInput struct {
	Username    *string
	Password    *string
	Email       *string
	Name        *string
	Phone       *string
	DateOfBirth *time.Time
	GenderID    *uint64
}

// UserListFilter holds the optional list-query inputs.
type UserListFilter struct {
	Username string
	Email    string
	Name     string
	Phone    string
	Genders  []string
}

// Create inserts a new user. Email and username are pre-checked for
// uniqueness, the gender reference must resolve, and the password is hashed
// exactly once before persistence.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	emailExisted, err := s.repo.ExistsBy("email", input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailExisted {
		return nil, ErrEmailTaken
	}

	usernameExisted, err := s.repo.ExistsBy("username", input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExisted {
		return nil, ErrUsernameTaken
	}

	genderValid, err := s.genderRepo.Exists(input.GenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check gender: %w", err)
	}
	if !genderValid {
		return nil, ErrInvalidGender
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:    input.Username,
		Password:    string(hash),
		Email:       input.Email,
		Name:        input.Name,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		GenderID:    input.GenderID,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Find returns the user with the given id, gender populated.
func (s *UserService) Find(id string) (*models.User, error) {
	user, err := s.repo.FindByID(id, "Gender")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// List returns one page of users matching the filter.
func (s *UserService) List(filter UserListFilter, opts pagination.Options) (*pagination.Result[models.User], error) {
	scopes := []query.Scope{
		query.PrefixMatch("username", filter.Username),
		query.PrefixMatch("email", filter.Email),
		query.PrefixMatch("name", filter.Name),
		query.PrefixMatch("phone", filter.Phone),
		query.MembershipMatch("gender_id", filter.Genders),
	}
	return s.repo.FindAll(scopes, query.Sort(opts.SortBy, userSortColumns), opts, "Gender")
}

// Update applies a partial merge. The gender reference, when present, must
// resolve; the password is re-hashed only when the patch carries one.
func (s *UserService) Update(id string, input UpdateUserInput) (*models.User, error) {
	if input.GenderID != nil {
		genderValid, err := s.genderRepo.Exists(*input.GenderID)
		if err != nil {
			return nil, fmt.Errorf("failed to check gender: %w", err)
		}
		if !genderValid {
			return nil, ErrInvalidGender
		}
	}

	patch := map[string]any{}
	if input.Username != nil {
		patch["username"] = *input.Username
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Phone != nil {
		patch["phone"] = *input.Phone
	}
	if input.DateOfBirth != nil {
		patch["date_of_birth"] = *input.DateOfBirth
	}
	if input.GenderID != nil {
		patch["gender_id"] = *input.GenderID
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.bcryptCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		patch["password"] = string(hash)
	}

	user, err := s.repo.UpdateByID(id, patch, "Gender")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes the user and returns its pre-delete value.
func (s *UserService) Delete(id string) (*models.User, error) {
	user, err := s.repo.DeleteByID(id, "Gender")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return user, nil
}

// Login resolves the login name by email shape, then verifies the password.
func (s *UserService) Login(loginName, password string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)

	if utils.IsEmail(loginName) {
		user, err = s.repo.FindByQuery(query.ExactMatch("email", loginName))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWrongEmail
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	} else {
		user, err = s.repo.FindByQuery(query.ExactMatch("username", loginName))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWrongUsername
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}

// Exists reports whether the user with the given primary key exists. Used by
// cross-resource reference checks.
func (s *UserService) Exists(id uint64) (bool, error) {
	return s.repo.Exists(id)
}
