package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/scriptify/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPersister stores sessions in the sessions table and the selection plus
// preferences in one store_state record keyed by the store name
type GormPersister struct {
	db   *gorm.DB
	name string
}

// NewGormPersister creates a persister for the named store
func NewGormPersister(db *gorm.DB, name string) *GormPersister {
	return &GormPersister{db: db, name: name}
}

// Load implements Persister
func (p *GormPersister) Load(ctx context.Context) (*Snapshot, error) {
	var sessions []models.Session
	if err := p.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	var state models.StoreState
	err := p.db.WithContext(ctx).Where("name = ?", p.name).First(&state).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load store state: %w", err)
	}

	return &Snapshot{
		Sessions:    sessions,
		CurrentID:   state.CurrentSessionID,
		Preferences: state.Preferences(),
	}, nil
}

// Save implements Persister. The whole snapshot is written in one transaction.
func (p *GormPersister) Save(ctx context.Context, snapshot Snapshot) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, 0, len(snapshot.Sessions))
		for i := range snapshot.Sessions {
			ids = append(ids, snapshot.Sessions[i].ID)
		}

		remove := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if len(ids) > 0 {
			remove = remove.Where("id NOT IN ?", ids)
		}
		if err := remove.Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to prune sessions: %w", err)
		}

		if len(snapshot.Sessions) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&snapshot.Sessions).Error; err != nil {
				return fmt.Errorf("failed to upsert sessions: %w", err)
			}
		}

		state := models.StoreState{
			Name:             p.name,
			CurrentSessionID: snapshot.CurrentID,
			Language:         snapshot.Preferences.Language,
			Model:            snapshot.Preferences.Model,
			Service:          snapshot.Preferences.Service,
			AutoSaveInterval: snapshot.Preferences.AutoSaveInterval,
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&state).Error; err != nil {
			return fmt.Errorf("failed to save store state: %w", err)
		}
		return nil
	})
}
