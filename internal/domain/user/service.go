package user

import (
	"errors"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Authenticator issues access tokens for authenticated users
type Authenticator interface {
	GenerateToken(userID uint, email string, role Role) (string, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) error
}

// Service handles user business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	hasher PasswordHasher
	authn  Authenticator
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, hasher PasswordHasher, authn Authenticator) *Service {
	return &Service{
		db:     db,
		config: cfg,
		hasher: hasher,
		authn:  authn,
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// AddAddressRequest represents a shipping address payload
type AddAddressRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	ZipCode      string `json:"zipCode" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (uint, error) {
	email := NormalizeEmail(req.Email)

	// Check if user already exists
	var existing User
	result := s.db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		return 0, apperrors.New(apperrors.CodeConflict, "User already exists with this email")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, apperrors.FromStore(result.Error, "failed to look up user")
	}

	// Hash password
	hashedPassword, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeValidation, err, "Invalid password")
	}

	// Create new user
	u := User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
		Phone:    req.Phone,
		Role:     RoleCustomer,
	}

	if err := s.db.Create(&u).Error; err != nil {
		return 0, apperrors.FromStore(err, "failed to create user")
	}

	return u.ID, nil
}

// Login authenticates a user and issues an access token
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var u User
	result := s.db.Where("email = ?", NormalizeEmail(req.Email)).First(&u)
	if result.Error != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "Invalid credentials")
	}

	// Verify password
	if err := s.hasher.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "Invalid credentials")
	}

	token, err := s.authn.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to generate token")
	}

	// Clear password from response
	u.Password = ""

	return &LoginResponse{
		Token: token,
		User:  &u,
	}, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if result.Error != nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "User not found")
	}

	// Clear password
	u.Password = ""

	return &u, nil
}

// UpdateProfile updates user profile. Password and role are never
// mass-assignable through this path.
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if result.Error != nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "User not found")
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"email": NormalizeEmail(req.Email),
		"phone": req.Phone,
	}

	if err := s.db.Model(&u).Updates(updates).Error; err != nil {
		return nil, apperrors.FromStore(err, "failed to update profile")
	}

	u.Password = ""
	return &u, nil
}

// AddAddress creates a new address for the user
func (s *Service) AddAddress(userID uint, req *AddAddressRequest) (uint, error) {
	address := Address{
		UserID:       userID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
	}

	if err := s.db.Create(&address).Error; err != nil {
		return 0, apperrors.FromStore(err, "failed to create address")
	}

	return address.ID, nil
}

// GetAddresses retrieves all addresses owned by the user
func (s *Service) GetAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).Find(&addresses).Error; err != nil {
		return nil, apperrors.FromStore(err, "failed to retrieve addresses")
	}
	return addresses, nil
}
