package postgres

import (
	"context"

	"housing/internal/domain/entity"
	domainerrors "housing/internal/domain/errors"
	"housing/internal/domain/repository"
	"housing/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain's UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their numeric ID.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByLoginID retrieves a local account by its login identifier.
func (repo *userRepository) FindByLoginID(ctx context.Context, loginID string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("login_id = ?", loginID).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by login id")
	}

	return toUserDomain(&userM), nil
}

// FindByAuthTypeAndProviderID retrieves a federated account by the
// (auth type, provider id) pair. Email is deliberately not part of the
// lookup; providers may change or withhold it.
func (repo *userRepository) FindByAuthTypeAndProviderID(ctx context.Context, authType entity.AuthType, providerID string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("auth_type = ? AND provider_id = ?", authType.String(), providerID).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by provider identity")
	}

	return toUserDomain(&userM), nil
}

// FindLocalByEmail retrieves a local account by email. Federated accounts
// never match here even when a provider reported the same address.
func (repo *userRepository) FindLocalByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ? AND auth_type = ?", email, entity.AuthTypeLocal.String()).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find local user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database and backfills the
// generated ID and timestamps.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("login id or provider identity already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		LoginID:      derefString(data.LoginID),
		PasswordHash: data.PasswordHash,
		Email:        derefString(data.Email),
		Name:         data.Name,
		Role:         entity.RoleFromString(data.Role),
		AuthType:     entity.AuthType(data.AuthType),
		ProviderID:   derefString(data.ProviderID),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
// Optional identity columns are stored as NULL rather than empty strings
// so the unique indexes only bite on real values.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		LoginID:      nilIfEmpty(data.LoginID),
		PasswordHash: data.PasswordHash,
		Email:        nilIfEmpty(data.Email),
		Name:         data.Name,
		Role:         data.Role.String(),
		AuthType:     data.AuthType.String(),
		ProviderID:   nilIfEmpty(data.ProviderID),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
