package snapshots_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/clock"
	"github.com/KirkDiggler/ironsworn-content/internal/redis"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
	"github.com/KirkDiggler/ironsworn-content/internal/testutils"
)

type VerifyTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   redis.Client
	repo     snapshots.Repository
	verifier snapshots.Verifier
	ctx      context.Context
}

func TestVerifySuite(t *testing.T) {
	suite.Run(t, new(VerifyTestSuite))
}

func (s *VerifyTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.mr = testutils.CreateTestRedisClient(s.T())

	cfg := &snapshots.Config{Client: s.client, Clock: clock.Fixed{At: time.Unix(0, 0).UTC()}}

	repo, err := snapshots.NewRedisRepository(cfg)
	s.Require().NoError(err)
	s.repo = repo

	verifier, err := snapshots.NewRedisVerifier(cfg)
	s.Require().NoError(err)
	s.verifier = verifier
}

func (s *VerifyTestSuite) save(runID string) {
	ids := idmap.New()
	ids.Set("Moves / Face Danger", "DF03000000000001")
	_, err := s.repo.Save(s.ctx, snapshots.SaveInput{RunID: runID, IDs: ids})
	s.Require().NoError(err)
}

func (s *VerifyTestSuite) TestVerifyClean() {
	s.save("run_1")
	s.save("run_2")

	out, err := s.verifier.Verify(s.ctx, snapshots.VerifyInput{Fix: true})
	s.Require().NoError(err)
	s.Equal(2, out.Checked)
	s.Empty(out.Corrupted)
	s.Empty(out.Deleted)
}

func (s *VerifyTestSuite) TestVerifyReportsWithoutFix() {
	s.save("run_1")
	s.Require().NoError(s.mr.Set("idmap_snapshot:broken", "{"))
	s.Require().NoError(s.mr.Set("idmap_snapshot:renamed", `{"run_id":"other","ids":{}}`))
	s.Require().NoError(s.mr.Set("idmap_snapshot:empty", `{"run_id":"empty","ids":null}`))

	out, err := s.verifier.Verify(s.ctx, snapshots.VerifyInput{})
	s.Require().NoError(err)
	s.Equal(4, out.Checked)
	s.ElementsMatch([]string{"idmap_snapshot:broken", "idmap_snapshot:renamed", "idmap_snapshot:empty"}, out.Corrupted)
	s.Empty(out.Deleted)
	s.True(s.mr.Exists("idmap_snapshot:broken"))
}

func (s *VerifyTestSuite) TestVerifyFixRepairsLatest() {
	s.save("run_1")
	s.save("run_2")
	s.Require().NoError(s.mr.Set("idmap_snapshot:run_2", "not json"))

	out, err := s.verifier.Verify(s.ctx, snapshots.VerifyInput{Fix: true})
	s.Require().NoError(err)
	s.Equal([]string{"idmap_snapshot:run_2"}, out.Deleted)
	s.False(s.mr.Exists("idmap_snapshot:run_2"))

	latest, err := s.repo.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal("run_1", latest.Snapshot.RunID)

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"run_1"}, list.RunIDs)
}

func (s *VerifyTestSuite) TestVerifyFixClearsLatestWhenNothingRemains() {
	s.save("run_1")
	s.Require().NoError(s.mr.Set("idmap_snapshot:run_1", "[]"))

	_, err := s.verifier.Verify(s.ctx, snapshots.VerifyInput{Fix: true})
	s.Require().NoError(err)

	_, err = s.repo.Latest(s.ctx)
	s.True(errors.IsNotFound(err))
}
