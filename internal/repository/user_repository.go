/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"errors"
	"fmt"

	"journal/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// This repository manipulates the user accounts. The username-uniqueness
// check and the last-admin guard run inside the write transactions, so
// concurrent callers can not interleave the check and the write.
type UserRepository interface {
	Create(user *entity.User) error // Inserts a user, rejecting a duplicate username
	Update(user *entity.User) error // Overwrites an existing user's fields
	Delete(uuid string) error       // Deletes the user and all of its entries

	GetForLogin(username, password string) (*entity.User, error) // Retrieves the user matching the exact username and password pair

	GetByUUID(uuid string) (*entity.User, error)         // Retrieves the user with the given uuid
	GetByUsername(username string) (*entity.User, error) // Retrieves the user with the given username (case-sensitive)
	GetAll() ([]*entity.User, error)                     // Retrieves all the users
	Count() (int64, error)                               // Counts all the users
}

// Implementation of the repository using a SQLite DB
type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(user *entity.User) error {
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(user).Error
	})
	if err == nil || errors.Is(err, ErrDuplicate) {
		return err
	}
	return fmt.Errorf("gorm: create user (username: %s): %w", user.Username, err)
}

func (repo *SQLiteUserRepository) Update(user *entity.User) error {
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var existing entity.User
		if err := tx.Where("uuid = ?", user.UUID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		// Username uniqueness is intentionally not re-checked on update;
		// the unique index still rejects a true collision at commit time.
		return tx.Save(user).Error
	})
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("gorm: update user (uuid: %s): %w", user.UUID, err)
}

func (repo *SQLiteUserRepository) Delete(uuid string) error {
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var target entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("uuid = ?", uuid).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if target.Role == entity.RoleAdmin {
			var admins int64
			if err := tx.Model(&entity.User{}).Where("role = ? AND uuid <> ?", entity.RoleAdmin, uuid).Count(&admins).Error; err != nil {
				return err
			}
			if admins == 0 {
				return ErrLastAdmin
			}
		}

		// Explicit two-step cascade: entries first, then the owner.
		if err := tx.Where("user_uuid = ?", uuid).Delete(&entity.Entry{}).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&entity.User{}).Error
	})
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrLastAdmin) {
		return err
	}
	return fmt.Errorf("gorm: delete user (uuid: %s): %w", uuid, err)
}

func (repo *SQLiteUserRepository) GetForLogin(username, password string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("username = ? AND password = ?", username, password).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user for login (username: %s): %w", username, err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUUID(uuid string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by uuid %s: %w", uuid, err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := repo.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username '%s': %w", username, err)
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetAll() ([]*entity.User, error) {
	var users []*entity.User
	if err := repo.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all users: %w", err)
	}
	return users, nil
}

func (repo *SQLiteUserRepository) Count() (int64, error) {
	var count int64
	if err := repo.db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count users: %w", err)
	}
	return count, nil
}
