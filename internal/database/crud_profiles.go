// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/murmur/internal/models"
)

const profileColumns = `username, profile_name, profile_description, avatar_url,
	follower_count, following_count, account_activated, created_at`

// CreateProfile inserts a new profile. CreatedAt defaults to now.
func (db *DB) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = db.now()
	}
	_, err := db.x.NamedExecContext(ctx, `INSERT INTO profiles (`+profileColumns+`)
		VALUES (:username, :profile_name, :profile_description, :avatar_url,
			:follower_count, :following_count, :account_activated, :created_at)`, p)
	if err != nil {
		return fmt.Errorf("failed to create profile %s: %w", p.Username, err)
	}
	return nil
}

// GetProfile loads one profile.
func (db *DB) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	err := db.x.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM profiles WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFound("profile", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", username, err)
	}
	return &p, nil
}

// ProfilesByUsernames loads the named profiles in the order given. Unknown
// names are skipped.
func (db *DB) ProfilesByUsernames(ctx context.Context, usernames []string) ([]models.Profile, error) {
	if len(usernames) == 0 {
		return []models.Profile{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+profileColumns+` FROM profiles WHERE username IN (?)`, usernames)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile lookup: %w", err)
	}
	var rows []models.Profile
	if err := db.x.SelectContext(ctx, &rows, db.x.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	byName := make(map[string]models.Profile, len(rows))
	for _, p := range rows {
		byName[p.Username] = p
	}
	out := make([]models.Profile, 0, len(rows))
	for _, name := range usernames {
		if p, ok := byName[name]; ok {
			out = append(out, p)
			delete(byName, name)
		}
	}
	return out, nil
}

// UpsertProfileDetails sets the display name and description, creating an
// activated profile on first use.
func (db *DB) UpsertProfileDetails(ctx context.Context, username, profileName, description string) error {
	_, err := db.conn.ExecContext(ctx, `INSERT INTO profiles (username, profile_name, profile_description, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET
			profile_name = EXCLUDED.profile_name,
			profile_description = EXCLUDED.profile_description`,
		username, profileName, description, db.now())
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", username, err)
	}
	return nil
}

// SetAccountActivated flips the activation flag.
func (db *DB) SetAccountActivated(ctx context.Context, username string, activated bool) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE profiles SET account_activated = ? WHERE username = ?`, activated, username)
	if err != nil {
		return fmt.Errorf("failed to set activation for %s: %w", username, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.NewNotFound("profile", username)
	}
	return nil
}

// IsAccountActive reports whether username has an activated profile.
// A missing profile is not active.
func (db *DB) IsAccountActive(ctx context.Context, username string) (bool, error) {
	var active bool
	err := db.x.GetContext(ctx, &active,
		`SELECT account_activated FROM profiles WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check activation for %s: %w", username, err)
	}
	return active, nil
}

func profileExists(ctx context.Context, q sqlx.QueryerContext, username string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE username = ?)`, username)
	return exists, err
}
