package idmap_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
)

type IDMapTestSuite struct {
	suite.Suite
}

func TestIDMapSuite(t *testing.T) {
	suite.Run(t, new(IDMapTestSuite))
}

func (s *IDMapTestSuite) TestResolveMissingKey() {
	m := idmap.New()
	m.Set("Moves / Face Danger", "DF03000000000001")

	s.Equal("DF03000000000001", m.Resolve("Moves / Face Danger"))
	s.Equal(idmap.Unresolved, m.Resolve("Moves / Unknown"))

	_, ok := m.Lookup("Moves / Unknown")
	s.False(ok)
}

func (s *IDMapTestSuite) TestJSONRoundTrip() {
	m := idmap.New()
	m.Set("Zed", "DF01000000000001")
	m.Set("Alpha", "DF01000000000002")

	data, err := json.Marshal(m)
	s.Require().NoError(err)
	s.Equal(`{"Zed":"DF01000000000001","Alpha":"DF01000000000002"}`, string(data))

	decoded := idmap.New()
	s.Require().NoError(json.Unmarshal(data, decoded))
	s.Equal([]string{"Zed", "Alpha"}, decoded.Keys())
	s.Equal("DF01000000000002", decoded.Resolve("Alpha"))
}

func (s *IDMapTestSuite) TestUnmarshalRejectsNonStringValues() {
	decoded := idmap.New()
	s.Error(json.Unmarshal([]byte(`{"Zed":1}`), decoded))
}

func (s *IDMapTestSuite) TestDiff() {
	previous := idmap.New()
	previous.Set("A", "DF01000000000001")
	previous.Set("B", "DF01000000000002")
	previous.Set("C", "DF01000000000003")

	current := idmap.New()
	current.Set("A", "DF01000000000001")
	current.Set("C", "DF01000000000002")
	current.Set("D", "DF01000000000003")

	churn := idmap.Diff(previous, current)
	s.Equal([]string{"D"}, churn.Added)
	s.Equal([]string{"B"}, churn.Removed)
	s.Equal([]string{"C"}, churn.Changed)
	s.False(churn.Stable())

	s.True(idmap.Diff(current, current).Stable())
}

func (s *IDMapTestSuite) TestDiffAgainstEmptyPrevious() {
	current := idmap.New()
	current.Set("A", "DF01000000000001")

	churn := idmap.Diff(nil, current)
	s.Equal([]string{"A"}, churn.Added)
	s.True(churn.Stable())
}
