/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package repository

import (
	"fmt"

	"journal/internal/entity"

	"gorm.io/gorm"
)

// This repository holds the journal entries. Entries are append-only: they
// are created once and only ever removed through the owner's cascade delete
// in the user repository.
type EntryRepository interface {
	Create(entry *entity.Entry) error                   // Inserts a new entry
	GetByUser(userUUID string) ([]*entity.Entry, error) // Retrieves the user's entries, most recent start time first
	CountByUser(userUUID string) (int64, error)         // Counts the user's entries
}

// Implementation of the repository using a SQLite DB
type SQLiteEntryRepository struct {
	db *gorm.DB
}

func NewSQLiteEntryRepository(db *gorm.DB) EntryRepository {
	return &SQLiteEntryRepository{db}
}

func (repo *SQLiteEntryRepository) Create(entry *entity.Entry) error {
	if err := repo.db.Create(entry).Error; err != nil {
		return fmt.Errorf("gorm: create entry (uuid: %s, user: %s): %w", entry.UUID, entry.UserUUID, err)
	}
	return nil
}

func (repo *SQLiteEntryRepository) GetByUser(userUUID string) ([]*entity.Entry, error) {
	var entries []*entity.Entry
	if err := repo.db.Where("user_uuid = ?", userUUID).Order("start_time DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("gorm: find entries for user %s: %w", userUUID, err)
	}
	return entries, nil
}

func (repo *SQLiteEntryRepository) CountByUser(userUUID string) (int64, error) {
	var count int64
	if err := repo.db.Model(&entity.Entry{}).Where("user_uuid = ?", userUUID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("gorm: count entries for user %s: %w", userUUID, err)
	}
	return count, nil
}
