// internal/database/mocks/store.go

// Package mocks holds testify mocks of the database interfaces.
package mocks

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"

	"github.com/jahphetB/github-activity-analytics/internal/database"
)

// Store is a mock of the database.Store interface. ExecTx runs the unit of
// work against the mock itself once the expectation on ExecTx succeeds.
type Store struct {
	mock.Mock
}

var _ database.Store = (*Store)(nil)

func (m *Store) ExecTx(ctx context.Context, fn func(database.Querier) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *Store) ActiveDailyCommitCounts(ctx context.Context, committedAt pgtype.Timestamptz) ([]database.ActiveDailyCommitCountsRow, error) {
	args := m.Called(ctx, committedAt)
	return args.Get(0).([]database.ActiveDailyCommitCountsRow), args.Error(1)
}

func (m *Store) CountActiveCommitsSince(ctx context.Context, committedAt pgtype.Timestamptz) (int64, error) {
	args := m.Called(ctx, committedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) CountActiveRepos(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) CountCommits(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) CountCommitsForRepo(ctx context.Context, repoID int64) (int64, error) {
	args := m.Called(ctx, repoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) DeleteRepoByFullName(ctx context.Context, fullName string) (database.DeleteRepoByFullNameRow, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(database.DeleteRepoByFullNameRow), args.Error(1)
}

func (m *Store) GetRepoByFullName(ctx context.Context, fullName string) (database.Repo, error) {
	args := m.Called(ctx, fullName)
	return args.Get(0).(database.Repo), args.Error(1)
}

func (m *Store) InsertCommit(ctx context.Context, arg database.InsertCommitParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) ListCommitsByRepo(ctx context.Context, arg database.ListCommitsByRepoParams) ([]database.Commit, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.Commit), args.Error(1)
}

func (m *Store) ListRepoActivity(ctx context.Context, arg database.ListRepoActivityParams) ([]database.ListRepoActivityRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.ListRepoActivityRow), args.Error(1)
}

func (m *Store) MaxActiveLastIngestedAt(ctx context.Context) (pgtype.Timestamptz, error) {
	args := m.Called(ctx)
	return args.Get(0).(pgtype.Timestamptz), args.Error(1)
}

func (m *Store) Ping(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *Store) RepoDailyCommitCounts(ctx context.Context, arg database.RepoDailyCommitCountsParams) ([]database.RepoDailyCommitCountsRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.RepoDailyCommitCountsRow), args.Error(1)
}

func (m *Store) ReleaseRepoFullName(ctx context.Context, arg database.ReleaseRepoFullNameParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) ReleaseUserLogin(ctx context.Context, arg database.ReleaseUserLoginParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) SetRepoActive(ctx context.Context, arg database.SetRepoActiveParams) (database.SetRepoActiveRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.SetRepoActiveRow), args.Error(1)
}

func (m *Store) SetRepoPinned(ctx context.Context, arg database.SetRepoPinnedParams) (database.SetRepoPinnedRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.SetRepoPinnedRow), args.Error(1)
}

func (m *Store) TopActiveReposSince(ctx context.Context, arg database.TopActiveReposSinceParams) ([]database.TopActiveReposSinceRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.TopActiveReposSinceRow), args.Error(1)
}

func (m *Store) TopContributors(ctx context.Context, arg database.TopContributorsParams) ([]database.TopContributorsRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.TopContributorsRow), args.Error(1)
}

func (m *Store) TouchRepoIngestedAt(ctx context.Context, arg database.TouchRepoIngestedAtParams) (pgtype.Timestamptz, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(pgtype.Timestamptz), args.Error(1)
}

func (m *Store) UpsertRepo(ctx context.Context, arg database.UpsertRepoParams) (database.Repo, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Repo), args.Error(1)
}

func (m *Store) UpsertUser(ctx context.Context, arg database.UpsertUserParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}
