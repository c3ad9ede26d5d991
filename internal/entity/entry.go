/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

import "time"

// Experience quality of the recorded activity
type Experience string

const (
	ExperienceEngaging  Experience = "Engaging"
	ExperienceBasic     Experience = "Basic"
	ExperienceSocial    Experience = "Social"
	ExperienceRelaxing  Experience = "Relaxing"
	ExperienceRegular   Experience = "Regular"
	ExperienceIrregular Experience = "Irregular"
	ExperiencePastime   Experience = "Pastime"
)

// Mood of the patient during the activity
type Mood string

const (
	MoodCalmRelaxed    Mood = "Calm and relaxed"
	MoodHappyGood      Mood = "Happy and in a good mood"
	MoodNervousAnxious Mood = "Nervous and anxious"
	MoodDepressed      Mood = "Depressed"
)

// Condition is the patient's arousal state
type Condition string

const (
	ConditionHyperarousal Condition = "Hyperarousal"
	ConditionTolerance    Condition = "Tolerance"
	ConditionHypoarousal  Condition = "Hypoarousal"
)

// Challenge level the activity posed
type Challenge string

const (
	ChallengeNotEnough Challenge = "Not Challenging Enough"
	ChallengeModerate  Challenge = "Moderately Challenging"
	ChallengeTooMuch   Challenge = "Too Challenging"
)

// Choice lists for the wizard's pickers
var (
	Experiences = []Experience{ExperienceEngaging, ExperienceBasic, ExperienceSocial, ExperienceRelaxing, ExperienceRegular, ExperienceIrregular, ExperiencePastime}
	Moods       = []Mood{MoodCalmRelaxed, MoodHappyGood, MoodNervousAnxious, MoodDepressed}
	Conditions  = []Condition{ConditionHyperarousal, ConditionTolerance, ConditionHypoarousal}
	Challenges  = []Challenge{ChallengeNotEnough, ChallengeModerate, ChallengeTooMuch}
)

// Entry is one journal record of an activity. Activity and experience are
// always present; the remaining fields are set only when the owner's
// required-field configuration asked for them at creation time. Entries are
// never mutated after creation.
type Entry struct {
	UUID      string    `gorm:"primaryKey" json:"uuid"`           // Unique identifier
	UserUUID  string    `gorm:"not null;index" json:"user"`       // UUID of the owning user
	StartTime time.Time `gorm:"not null;index" json:"start-time"` // When the activity started
	Activity  string    `gorm:"not null" json:"activity"`         // Free-text description of the activity

	Experience Experience `gorm:"not null" json:"experience"` // Always recorded, defaults to Basic

	Mood      *Mood      `json:"mood,omitempty"`      // Optional mood during the activity
	Condition *Condition `json:"condition,omitempty"` // Optional arousal state
	Stress    *int       `json:"stress,omitempty"`    // Optional stress level, 0-10
	Control   *int       `json:"control,omitempty"`   // Optional sense of control, 0-10
	Challenge *Challenge `json:"challenge,omitempty"` // Optional challenge level
	Energy    *int       `json:"energy,omitempty"`    // Optional energy level, 0-10
	Pain      *int       `json:"pain,omitempty"`      // Optional pain level, 0-10
	Comments  *string    `json:"comments,omitempty"`  // Optional free-text comments

	CreatedAt time.Time `gorm:"not null" json:"created-at"` // Recorded once at creation, immutable
}
