/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"errors"
	"time"

	"journal/internal/entity"
	"journal/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service for the admin-facing account management. The acting user is passed
// in explicitly: the HTTP layer resolves it per request from the cookie,
// single-operator flows hand over the session's current user. Every mutating
// operation requires the actor to be an admin; a failed operation leaves no
// partial state behind.
type UserService interface {
	CreateUser(actor *entity.User, username, password string, role entity.Role, required entity.FieldSet) (*entity.User, error) // Creates a new user with the given required-field set
	UpdateUser(actor *entity.User, user *entity.User) error                                                                     // Overwrites the identified user's mutable fields
	DeleteUser(actor *entity.User, uuid string) error                                                                           // Deletes the user and cascades to its entries

	GetUser(uuid string) (*entity.User, error) // Retrieves a single user
	GetUsers() ([]*entity.User, error)         // Retrieves all the users
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) CreateUser(actor *entity.User, username, password string, role entity.Role, required entity.FieldSet) (*entity.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	if required == nil {
		required = entity.DefaultRequiredFields()
	}

	user := &entity.User{
		UUID:           uuid.New().String(),
		Username:       username,
		Password:       password,
		Role:           role,
		CreatedAt:      time.Now(),
		RequiredFields: required,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logrus.WithField("username", username).Warn("Create user failed: username taken")
			return nil, ErrDuplicateUsername
		}
		logrus.WithError(err).Error("Create user failed")
		return nil, ErrPersistence
	}

	logrus.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("User created")
	return user, nil
}

func (s *userService) UpdateUser(actor *entity.User, user *entity.User) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}

	if err := s.users.Update(user); err != nil {
		logrus.WithError(err).WithField("uuid", user.UUID).Error("Update user failed")
		return ErrPersistence
	}

	logrus.WithField("username", user.Username).Info("User updated")
	return nil
}

func (s *userService) DeleteUser(actor *entity.User, uuid string) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}

	// An admin can never delete its own account.
	if actor.UUID == uuid {
		return ErrInvalidDeleteTarget
	}

	if err := s.users.Delete(uuid); err != nil {
		if errors.Is(err, repository.ErrLastAdmin) {
			logrus.WithField("uuid", uuid).Warn("Delete user refused: last admin")
			return ErrInvalidDeleteTarget
		}
		logrus.WithError(err).WithField("uuid", uuid).Error("Delete user failed")
		return ErrPersistence
	}

	logrus.WithField("uuid", uuid).Info("User deleted")
	return nil
}

func (s *userService) GetUser(uuid string) (*entity.User, error) {
	user, err := s.users.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrPersistence
	}
	return user, nil
}

func (s *userService) GetUsers() ([]*entity.User, error) {
	users, err := s.users.GetAll()
	if err != nil {
		return nil, ErrPersistence
	}
	return users, nil
}
