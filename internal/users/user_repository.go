package users

import (
	"fmt"

	"commissary/internal/repository"
	"commissary/pkg/apperrors"
	"commissary/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

const usersTable = "users"

type UserRepository struct {
	Repository *repository.Repository
}

func NewUserRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{Repository: r}
}

func (r *UserRepository) GetUser(id int) (*models.User, error) {
	var user models.User
	query := r.Repository.GoquDBWrapper.
		From(usersTable).
		Select(&models.User{}).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("User")
	}

	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := r.Repository.GoquDBWrapper.
		From(usersTable).
		Select(&models.User{}).
		Where(goqu.Ex{"username": username})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("User")
	}

	return &user, nil
}

func (r *UserRepository) PersistUser(user *models.User) error {
	query := r.Repository.GoquDBWrapper.Insert(usersTable).
		Rows(goqu.Record{
			"username":        user.Username,
			"email":           user.Email,
			"hashed_password": user.PasswordHash,
			"role":            user.Role,
		}).
		Returning("id", "created_at")

	if _, err := query.Executor().ScanStruct(user); err != nil {
		return apperrors.WrapDB(err, "user")
	}

	return nil
}
