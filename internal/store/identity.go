package store

import (
	"civic_reports/internal/domain" // Importing domain models
	"context"                       // Request scoped operations
	"errors"                        // Error inspection
	"regexp"                        // Regular expressions
	"strings"                       // Input normalization

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Upsert clauses
)

// RegisterInput is the profile submitted at sign up
type RegisterInput struct {
	Username     string // Unique username
	Email        string // Unique email, stored lowercased
	Password     string // Plain password, hashed before storage
	FullName     string // Optional
	Phone        string // Optional
	Address      string // Optional
	Pincode      string // Six digits when present
	GovtIDType   string // aadhaar, pan or voter
	GovtIDNumber string // Checked against GovtIDType
}

// ProfileInput holds the mutable profile fields of a user
type ProfileInput struct {
	FullName     string // Full name
	Phone        string // Phone number
	Address      string // Postal address
	Pincode      string // Six digits when present
	GovtIDType   string // aadhaar, pan or voter
	GovtIDNumber string // Checked against GovtIDType
}

var (
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`) // Indian postal code
	govtIDPatterns = map[string]*regexp.Regexp{
		"aadhaar": regexp.MustCompile(`^[0-9]{12}$`),             // 12 digits
		"pan":     regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`), // e.g. ABCDE1234F
		"voter":   regexp.MustCompile(`(?i)^[A-Z0-9]{6,12}$`),    // EPIC number
	}
)

// validateProfile checks the optional profile fields. Empty values are allowed.
func validateProfile(p ProfileInput) error {
	if p.Pincode != "" && !pincodePattern.MatchString(p.Pincode) {
		return validationError("Pincode must be 6 digits")
	}
	if p.GovtIDType == "" && p.GovtIDNumber == "" {
		return nil
	}
	pattern, ok := govtIDPatterns[p.GovtIDType]
	if !ok {
		return validationError("Government ID type must be one of aadhaar, pan, voter")
	}
	if !pattern.MatchString(p.GovtIDNumber) {
		switch p.GovtIDType {
		case "aadhaar":
			return validationError("Aadhaar must be 12 digits")
		case "pan":
			return validationError("Invalid PAN format (e.g., ABCDE1234F)")
		default:
			return validationError("Invalid Voter ID format")
		}
	}
	return nil
}

// MaskGovtID hides the middle of a government id, e.g. 1234-****-9012
func MaskGovtID(id string) string {
	if id == "" {
		return ""
	}
	if len(id) < 8 {
		return "****"
	}
	return id[:4] + "-****-" + id[len(id)-4:]
}

// Register creates a user. Username and email uniqueness is left to the
// unique indexes so concurrent sign ups cannot both succeed.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)            // Trim whitespace
	in.Email = strings.ToLower(strings.TrimSpace(in.Email)) // Emails compare case-insensitively
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, validationError("Username, email, and password are required")
	}
	profile := ProfileInput{
		FullName:     in.FullName,
		Phone:        in.Phone,
		Address:      in.Address,
		Pincode:      in.Pincode,
		GovtIDType:   in.GovtIDType,
		GovtIDNumber: in.GovtIDNumber,
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost) // Hash the password
	if err != nil {
		return nil, &Error{Kind: ErrStorage, Msg: "Failed to hash password", Cause: err}
	}

	user := domain.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     string(hash), // Only the hash is stored
		FullName:     in.FullName,
		Phone:        in.Phone,
		Address:      in.Address,
		Pincode:      in.Pincode,
		GovtIDType:   in.GovtIDType,
		GovtIDNumber: in.GovtIDNumber,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, s.classifyDuplicateUser(ctx, in.Username) // Username or email taken
		}
		return nil, storageError(err)
	}
	return &user, nil
}

// classifyDuplicateUser works out which unique column a failed insert hit
func (s *Store) classifyDuplicateUser(ctx context.Context, username string) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&n).Error; err == nil && n > 0 {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// Authenticate checks a username or email against the stored bcrypt hash
func (s *Store) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	login = strings.TrimSpace(login) // Username or email
	if login == "" || password == "" {
		return nil, validationError("Username and password are required")
	}
	var user domain.User // Matching user
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, storageError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil { // Compare the hashed password
		return nil, ErrBadCredentials
	}
	return &user, nil
}

// AuthenticateAdmin checks admin credentials
func (s *Store) AuthenticateAdmin(ctx context.Context, email, password string) (*domain.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}
	var admin domain.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, storageError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil { // Compare the hashed password
		return nil, ErrBadCredentials
	}
	return &admin, nil
}

// SeedAdmin inserts the default administrator unless the email is taken
func (s *Store) SeedAdmin(ctx context.Context, email, password, name string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return &Error{Kind: ErrStorage, Msg: "Failed to hash password", Cause: err}
	}
	admin := domain.Admin{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hash),
		Name:     name,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}). // Keep an existing admin
		Create(&admin).Error
	if err != nil {
		return storageError(err)
	}
	return nil
}

// GetUser loads a user by id
func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &user, nil
}

// GetAdmin loads an admin by id
func (s *Store) GetAdmin(ctx context.Context, id uint) (*domain.Admin, error) {
	var admin domain.Admin
	err := s.db.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &Error{Kind: ErrNotFound, Msg: "Admin not found"}
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &admin, nil
}

// UpdateProfile replaces the profile fields of a user
func (s *Store) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*domain.User, error) {
	if err := validateProfile(in); err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"full_name":      in.FullName,
		"phone":          in.Phone,
		"address":        in.Address,
		"pincode":        in.Pincode,
		"govt_id_type":   in.GovtIDType,
		"govt_id_number": in.GovtIDNumber,
	}).Error
	if err != nil {
		return nil, storageError(err)
	}
	return s.GetUser(ctx, userID)
}
