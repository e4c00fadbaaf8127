// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"warden/internal/domain/entity"
	domainerrors "warden/internal/domain/errors"
	"warden/internal/domain/repository"
	"warden/internal/infra/persistence/model"
)

var publicPrincipalColumns = []string{
	"id", "username", "email", "full_name", "avatar_url", "cover_image_url", "created_at", "updated_at",
}

// principalRepository implements the repository.PrincipalRepository interface using GORM.
type principalRepository struct {
	db *gorm.DB
}

// NewPrincipalRepository is the constructor for principalRepository.
// It returns the repository as a repository.PrincipalRepository interface, adhering to dependency inversion.
func NewPrincipalRepository(db *gorm.DB) repository.PrincipalRepository {
	return &principalRepository{db: db}
}

// primary routes the statement to the primary so that credential and session
// reads never observe replica lag.
func (repo *principalRepository) primary(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Clauses(dbresolver.Write)
}

// FindByUsernameOrEmail retrieves the principal matching either identifier.
func (repo *principalRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.Principal, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	query := repo.primary(ctx)
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return nil, repository.ErrPrincipalNotFound
	}

	var principalM model.PrincipalModel
	if err := query.Take(&principalM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find principal by username or email")
	}

	return toPrincipalDomain(&principalM), nil
}

// FindByID retrieves a principal including its password and refresh token hashes.
func (repo *principalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Principal, error) {
	var principalM model.PrincipalModel
	if err := repo.primary(ctx).Where("id = ?", id).Take(&principalM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find principal by id")
	}

	return toPrincipalDomain(&principalM), nil
}

// FindPublicByID selects only the public columns. It may be served by a replica.
func (repo *principalRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.PublicPrincipal, error) {
	var publicM model.PublicPrincipalModel
	err := repo.db.WithContext(ctx).
		Select(publicPrincipalColumns).
		Where("id = ?", id).
		Take(&publicM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrincipalNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find public principal by id")
	}

	return toPublicPrincipalDomain(&publicM), nil
}

// Create persists a new principal and writes the assigned ID and timestamps back.
func (repo *principalRepository) Create(ctx context.Context, principal *entity.Principal) error {
	if principal.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate principal id")
		}
		principal.ID = id
	}

	principalM := fromPrincipalDomain(principal)
	if err := repo.db.WithContext(ctx).Create(principalM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPrincipalAlreadyExists.WrapMessage("username or email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrPrincipalCreationFailed.WrapMessage("missing required principal information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create principal")
	}

	principal.CreatedAt = principalM.CreatedAt
	principal.UpdatedAt = principalM.UpdatedAt

	return nil
}

// UpdateRefreshTokenHash overwrites the stored hash unconditionally.
func (repo *principalRepository) UpdateRefreshTokenHash(ctx context.Context, id uuid.UUID, hash *string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PrincipalModel{}).
		Where("id = ?", id).
		Update("refresh_token_hash", hash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update refresh token hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPrincipalNotFound
	}

	return nil
}

// RotateRefreshTokenHash swaps currentHash for nextHash in a single conditional
// UPDATE. Of two concurrent rotations of the same hash only one matches a row.
func (repo *principalRepository) RotateRefreshTokenHash(ctx context.Context, id uuid.UUID, currentHash, nextHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PrincipalModel{}).
		Where("id = ? AND refresh_token_hash = ?", id, currentHash).
		Update("refresh_token_hash", nextHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to rotate refresh token hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenMismatch
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toPrincipalDomain(data *model.PrincipalModel) *entity.Principal {
	if data == nil {
		return nil
	}

	return &entity.Principal{
		ID:               data.ID,
		Username:         data.Username,
		Email:            data.Email,
		FullName:         data.FullName,
		AvatarURL:        data.AvatarURL,
		CoverImageURL:    data.CoverImageURL,
		PasswordHash:     data.PasswordHash,
		RefreshTokenHash: data.RefreshTokenHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromPrincipalDomain(data *entity.Principal) *model.PrincipalModel {
	if data == nil {
		return nil
	}

	return &model.PrincipalModel{
		ID:               data.ID,
		Username:         data.Username,
		Email:            data.Email,
		FullName:         data.FullName,
		AvatarURL:        data.AvatarURL,
		CoverImageURL:    data.CoverImageURL,
		PasswordHash:     data.PasswordHash,
		RefreshTokenHash: data.RefreshTokenHash,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func toPublicPrincipalDomain(data *model.PublicPrincipalModel) *entity.PublicPrincipal {
	if data == nil {
		return nil
	}

	return &entity.PublicPrincipal{
		ID:            data.ID,
		Username:      data.Username,
		Email:         data.Email,
		FullName:      data.FullName,
		AvatarURL:     data.AvatarURL,
		CoverImageURL: data.CoverImageURL,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
