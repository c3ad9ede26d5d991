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

	"journal/internal/entity"
	"journal/internal/repository"
	"journal/internal/session"

	"github.com/sirupsen/logrus"
)

// Service used for the login and logout phases
type AuthService interface {
	Login(username, password string) (*entity.User, error) // Authenticates by exact credential match and makes the user current
	Logout()                                               // Clears the session's current user, idempotent
}

type authService struct {
	users   repository.UserRepository
	session *session.Session
}

func NewAuthService(users repository.UserRepository, sess *session.Session) AuthService {
	return &authService{users: users, session: sess}
}

// Login matches the username and password verbatim, with no normalization.
// On failure the session is left untouched.
func (a *authService) Login(username, password string) (*entity.User, error) {
	user, err := a.users.GetForLogin(username, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logrus.WithField("username", username).Warn("Login failed: wrong credentials")
			return nil, ErrInvalidCredentials
		}
		logrus.WithError(err).Error("Login failed: user lookup")
		return nil, ErrPersistence
	}

	a.session.Set(user)
	logrus.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("User logged in")
	return user, nil
}

func (a *authService) Logout() {
	a.session.Clear()
}
