package snapshots_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/clock"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
	"github.com/KirkDiggler/ironsworn-content/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo snapshots.Repository
	ctx  context.Context
	now  time.Time
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	repo, err := snapshots.NewRedisRepository(&snapshots.Config{
		Client: client,
		Clock:  clock.Fixed{At: s.now},
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) newMap(pairs ...string) *idmap.IDMap {
	m := idmap.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository() {
	testCases := []struct {
		name    string
		cfg     *snapshots.Config
		wantErr bool
	}{
		{name: "nil config", cfg: nil, wantErr: true},
		{name: "missing client", cfg: &snapshots.Config{}, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := snapshots.NewRedisRepository(tc.cfg)
			s.Error(err)
			s.Nil(repo)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestLatestEmpty() {
	_, err := s.repo.Latest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveAndLatest() {
	_, err := s.repo.Save(s.ctx, snapshots.SaveInput{
		RunID: "run_1",
		IDs:   s.newMap("Moves / Face_Danger", "DF03000000000001"),
	})
	s.Require().NoError(err)

	out, err := s.repo.Save(s.ctx, snapshots.SaveInput{
		RunID: "run_2",
		IDs: s.newMap(
			"Moves / Pay_the_Price", "DF03000000000006",
			"Moves / Face_Danger", "DF03000000000002",
		),
	})
	s.Require().NoError(err)
	s.Equal("run_2", out.Snapshot.RunID)

	latest, err := s.repo.Latest(s.ctx)
	s.Require().NoError(err)

	snap := latest.Snapshot
	s.Equal("run_2", snap.RunID)
	s.True(s.now.Equal(snap.CreatedAt))
	s.Equal([]string{"Moves / Pay_the_Price", "Moves / Face_Danger"}, snap.IDs.Keys())
	s.Equal("DF03000000000002", snap.IDs.Resolve("Moves / Face_Danger"))

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"run_1", "run_2"}, list.RunIDs)
}

func (s *RedisRepositoryTestSuite) TestSaveValidation() {
	_, err := s.repo.Save(s.ctx, snapshots.SaveInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "RunID")
	s.Contains(err.Error(), "IDs")
}

func (s *RedisRepositoryTestSuite) TestLatestCorrupted() {
	s.Require().NoError(s.mr.Set("idmap_snapshot:latest", "run_x"))
	s.Require().NoError(s.mr.Set("idmap_snapshot:run_x", "{not json"))

	_, err := s.repo.Latest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsDataLoss(err))
}

func (s *RedisRepositoryTestSuite) TestLatestDanglingPointer() {
	s.Require().NoError(s.mr.Set("idmap_snapshot:latest", "run_gone"))

	_, err := s.repo.Latest(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestRedisUnavailable() {
	s.mr.Close()

	_, err := s.repo.Latest(s.ctx)
	s.Require().Error(err)
	s.False(errors.IsNotFound(err))
}
