package postgres

import (
	"database/sql"
	"time"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/auth"
	personDatamodel "github.com/guardforce/workforce-management/internal/core/datamodel/person"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, int64, error) {
	var passwordHash string
	var personID int64
	query := `SELECT id, password_hash FROM people WHERE LOWER(email) = LOWER(?) AND status = 'ACTIVE'`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&personID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, internal.ErrInvalidCredentials
		}
		return "", 0, err
	}
	return passwordHash, personID, nil
}

func (r *Repository) GetUserByID(personID int64) (*auth.User, error) {
	var p personDatamodel.Person
	err := r.db.Where("id = ?", personID).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("person not found", internal.ErrCodeOperatorNotFound)
		}
		return nil, err
	}
	if p.Status != personDatamodel.StatusActive {
		return nil, internal.ErrPersonInactive
	}
	return &auth.User{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Role:  roles.Role(p.Role),
	}, nil
}

func (r *Repository) TouchLastLogin(personID int64) error {
	return r.db.Model(&personDatamodel.Person{}).
		Where("id = ?", personID).
		Update("last_login_at", time.Now()).Error
}
