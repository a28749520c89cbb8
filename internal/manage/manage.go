// internal/manage/manage.go

// Package manage mutates the management state of stored repositories: the
// pinned and active flags, and deletion.
package manage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jahphetB/github-activity-analytics/internal/database"
	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/validation"
)

const defaultDBTimeout = 10 * time.Second

// Flags is the management state of a repository after an update.
type Flags struct {
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
	IsPinned bool   `json:"is_pinned"`
}

// Deleted describes a removed repository and how many commits went with it.
type Deleted struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	CommitsDeleted int64  `json:"commits_deleted"`
}

type target struct {
	FullName string `json:"full_name" validate:"required,fullname"`
}

// Manager runs the management operations.
type Manager struct {
	store     database.Store
	logger    *slog.Logger
	dbTimeout time.Duration
}

func NewManager(store database.Store, logger *slog.Logger, dbTimeout time.Duration) *Manager {
	if dbTimeout <= 0 {
		dbTimeout = defaultDBTimeout
	}
	return &Manager{store: store, logger: logger, dbTimeout: dbTimeout}
}

// SetPinned sets the display-only pinned flag.
func (m *Manager) SetPinned(ctx context.Context, fullName string, pinned bool) (*Flags, error) {
	if err := validation.Struct(target{FullName: fullName}); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, m.dbTimeout)
	defer cancel()

	row, err := m.store.SetRepoPinned(ctx, database.SetRepoPinnedParams{FullName: fullName, IsPinned: pinned})
	if err != nil {
		return nil, notFound(fullName, "set pinned", err)
	}
	m.logger.Info("Repository pin updated", "repo", fullName, "is_pinned", pinned)
	return &Flags{FullName: row.FullName, IsActive: row.IsActive, IsPinned: row.IsPinned}, nil
}

// SetActive pauses or resumes a repository. Paused repositories keep their
// commits but drop out of aggregate analytics.
func (m *Manager) SetActive(ctx context.Context, fullName string, active bool) (*Flags, error) {
	if err := validation.Struct(target{FullName: fullName}); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, m.dbTimeout)
	defer cancel()

	row, err := m.store.SetRepoActive(ctx, database.SetRepoActiveParams{FullName: fullName, IsActive: active})
	if err != nil {
		return nil, notFound(fullName, "set active", err)
	}
	m.logger.Info("Repository active flag updated", "repo", fullName, "is_active", active)
	return &Flags{FullName: row.FullName, IsActive: row.IsActive, IsPinned: row.IsPinned}, nil
}

// Delete removes a repository and, by cascade, its commits in one transaction.
func (m *Manager) Delete(ctx context.Context, fullName string) (*Deleted, error) {
	if err := validation.Struct(target{FullName: fullName}); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, m.dbTimeout)
	defer cancel()

	var res Deleted
	err := m.store.ExecTx(ctx, func(q database.Querier) error {
		repo, err := q.GetRepoByFullName(ctx, fullName)
		if err != nil {
			return notFound(fullName, "get repository", err)
		}
		commits, err := q.CountCommitsForRepo(ctx, repo.ID)
		if err != nil {
			return fmt.Errorf("count commits of %s: %w", fullName, err)
		}
		row, err := q.DeleteRepoByFullName(ctx, fullName)
		if err != nil {
			return notFound(fullName, "delete repository", err)
		}
		res = Deleted{ID: row.ID, FullName: row.FullName, CommitsDeleted: commits}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("Repository deleted", "repo", res.FullName, "repo_id", res.ID, "commits_deleted", res.CommitsDeleted)
	return &res, nil
}

// notFound translates a missing row into RepoNotFoundError and wraps anything else.
func notFound(fullName, op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &custom_errors.RepoNotFoundError{FullName: fullName}
	}
	return fmt.Errorf("%s %s: %w", op, fullName, err)
}
