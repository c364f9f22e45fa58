package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wanderlist/internal/domain"
	"wanderlist/internal/utils"

	"gorm.io/gorm"
)

// RegisterInput holds the fields accepted at registration
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Country  string
	Currency string
}

// ProfileUpdate holds the optional fields of a profile change
type ProfileUpdate struct {
	Country  *string
	Password *string
}

// UserStore is the credential store
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// normalize trims the input and lowercases the email
func (in RegisterInput) normalize() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Country = strings.TrimSpace(in.Country)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	return in
}

// checkPassword enforces the length bounds bcrypt can honour
func checkPassword(password string) error {
	if len(password) < utils.MinPasswordLength {
		return domain.Validation("Password must be at least 8 characters long.")
	}
	if len(password) > utils.MaxPasswordLength {
		return domain.Validation("Password must be at most 72 bytes long.")
	}
	return nil
}

// CheckRegistration runs every local registration rule, including the
// uniqueness of username and email, without writing anything.
func (s *UserStore) CheckRegistration(ctx context.Context, in RegisterInput) error {
	in = in.normalize()
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Country == "" {
		return domain.Validation("All fields are required")
	}
	// Login treats an identifier with "@" as an email
	if strings.Contains(in.Username, "@") {
		return domain.Validation("Username must not contain @")
	}
	if !domain.IsEmail(in.Email) {
		return domain.Validation("Invalid email address")
	}
	if err := checkPassword(in.Password); err != nil {
		return err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking existing user: %w", err)
	}
	if count > 0 {
		return domain.Duplicate("Username or email already in use")
	}
	return nil
}

// Register creates a user with a bcrypt-hashed password
func (s *UserStore) Register(ctx context.Context, in RegisterInput) error {
	in = in.normalize()
	if err := s.CheckRegistration(ctx, in); err != nil {
		return err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Country:  in.Country,
		Currency: in.Currency,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("Username or email already in use")
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Authenticate looks the user up by email when the identifier contains "@",
// by username otherwise, and checks the password.
func (s *UserStore) Authenticate(ctx context.Context, identifier, password string) (domain.Identity, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.Identity{}, domain.Validation("Identifier and password are required")
	}

	query := s.db.WithContext(ctx).Where("username = ?", identifier)
	if strings.Contains(identifier, "@") {
		query = s.db.WithContext(ctx).Where("email = ?", strings.ToLower(identifier))
	}
	var user domain.User
	err := query.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Identity{}, domain.NotFound("User not found")
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("finding user: %w", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return domain.Identity{}, domain.InvalidCredentials("Invalid password")
	}
	return domain.Identity{ID: user.ID, Username: user.Username}, nil
}

// Profile returns the user record. The password hash never serializes.
func (s *UserStore) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &user, nil
}

// UpdateProfile changes country and/or password and returns the updated user
func (s *UserStore) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if upd.Country != nil && strings.TrimSpace(*upd.Country) != "" {
		fields["country"] = strings.TrimSpace(*upd.Country)
	}
	if upd.Password != nil && *upd.Password != "" {
		if err := checkPassword(*upd.Password); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(*upd.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		fields["password"] = hash
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return user, nil
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return s.Profile(ctx, userID)
}
