package models

import "time"

// Session is a named, persisted transcript
type Session struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Transcript string    `gorm:"type:text" json:"transcript"`
	Position   int       `gorm:"index" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}

// Preferences are the user defaults persisted alongside the session list
type Preferences struct {
	Language         string `json:"language"`
	Model            string `json:"model"`
	Service          string `json:"service"`
	AutoSaveInterval int    `json:"auto_save_interval"` // seconds; stored, not used as a save trigger
}

// StoreState is the key-value record holding the selected session and preferences
type StoreState struct {
	Name             string    `gorm:"primaryKey;size:64" json:"name"`
	CurrentSessionID string    `gorm:"size:36" json:"current_session_id"`
	Language         string    `json:"language"`
	Model            string    `json:"model"`
	Service          string    `json:"service"`
	AutoSaveInterval int       `json:"auto_save_interval"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for StoreState
func (StoreState) TableName() string {
	return "store_state"
}

// Preferences returns the preference fields of the record
func (s StoreState) Preferences() Preferences {
	return Preferences{
		Language:         s.Language,
		Model:            s.Model,
		Service:          s.Service,
		AutoSaveInterval: s.AutoSaveInterval,
	}
}
