/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package service

import (
	"time"

	"journal/internal/entity"
	"journal/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service for a user's journal. The acting user is passed in explicitly so
// every entry is attributed to the request that carried it, never to whoever
// happened to log in last; the HTTP layer resolves the actor per request from
// the cookie, single-operator flows hand over the session's current user.
// Saving requires an actor but no particular role: the wizard UI is what
// restricts this to patients.
type EntryService interface {
	SaveEntry(actor *entity.User, entry *entity.Entry) error    // Appends an entry under the actor's identity
	EntriesForUser(actor *entity.User) ([]*entity.Entry, error) // The actor's own entries, most recent start time first
	WizardSteps(actor *entity.User) []entity.EntryField         // Ordered wizard steps for the actor's required-field set
}

type entryService struct {
	entries repository.EntryRepository
}

func NewEntryService(entries repository.EntryRepository) EntryService {
	return &entryService{entries: entries}
}

func (s *entryService) SaveEntry(actor *entity.User, entry *entity.Entry) error {
	if actor == nil {
		return ErrNoActiveSession
	}

	entry.UUID = uuid.New().String()
	entry.UserUUID = actor.UUID
	entry.CreatedAt = time.Now()
	if entry.StartTime.IsZero() {
		entry.StartTime = entry.CreatedAt
	}
	if entry.Experience == "" {
		entry.Experience = entity.ExperienceBasic
	}

	if err := s.entries.Create(entry); err != nil {
		logrus.WithError(err).WithField("user", actor.Username).Error("Save entry failed")
		return ErrPersistence
	}

	logrus.WithFields(logrus.Fields{"user": actor.Username, "activity": entry.Activity}).Info("Entry saved")
	return nil
}

func (s *entryService) EntriesForUser(actor *entity.User) ([]*entity.Entry, error) {
	if actor == nil {
		return []*entity.Entry{}, nil
	}

	entries, err := s.entries.GetByUser(actor.UUID)
	if err != nil {
		logrus.WithError(err).WithField("user", actor.Username).Error("Listing entries failed")
		return nil, ErrPersistence
	}
	return entries, nil
}

// WizardSteps falls back to the three bare minimum steps when there is no
// actor, mirroring what the original wizard screen showed.
func (s *entryService) WizardSteps(actor *entity.User) []entity.EntryField {
	if actor == nil {
		return entity.WizardSteps(entity.NewFieldSet(entity.FieldStartTime, entity.FieldActivity, entity.FieldExperience))
	}
	return entity.WizardSteps(actor.RequiredFields)
}
