package snapshots_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/clock"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
)

type InMemoryRepositoryTestSuite struct {
	suite.Suite
	repo *snapshots.InMemoryRepository
	ctx  context.Context
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}

func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = snapshots.NewInMemoryRepository(clock.Fixed{At: time.Unix(0, 0).UTC()})
}

func (s *InMemoryRepositoryTestSuite) TestLatest() {
	_, err := s.repo.Latest(s.ctx)
	s.True(errors.IsNotFound(err))

	ids := idmap.New()
	ids.Set("Assets / Starship", "DF01000000000001")

	_, err = s.repo.Save(s.ctx, snapshots.SaveInput{RunID: "a", IDs: ids})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, snapshots.SaveInput{RunID: "b", IDs: ids})
	s.Require().NoError(err)

	out, err := s.repo.Latest(s.ctx)
	s.Require().NoError(err)
	s.Equal("b", out.Snapshot.RunID)
	s.Equal(1, out.Snapshot.IDs.Len())

	list, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, list.RunIDs)
}

func (s *InMemoryRepositoryTestSuite) TestSaveValidation() {
	_, err := s.repo.Save(s.ctx, snapshots.SaveInput{RunID: "a"})
	s.True(errors.IsInvalidArgument(err))
}
