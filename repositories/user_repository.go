package repositories

import (
	"context"

	"galatide/models"
)

type UserRepository struct {
	conn Connector
}

func NewUserRepository(conn Connector) *UserRepository {
	return &UserRepository{conn: conn}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return err
	}

	record := fromUser(user)
	if err := db.Create(&record).Error; err != nil {
		return translateError("user", err)
	}
	*user = toUser(&record)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record userRecord
	if err := db.First(&record, id).Error; err != nil {
		return nil, translateError("user", err)
	}
	user := toUser(&record)
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := getExecutor(ctx, r.conn)
	if err != nil {
		return nil, err
	}

	var record userRecord
	if err := db.Where("email = ?", email).First(&record).Error; err != nil {
		return nil, translateError("user", err)
	}
	user := toUser(&record)
	return &user, nil
}
