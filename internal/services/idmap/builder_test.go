package idmap_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
	"github.com/KirkDiggler/ironsworn-content/internal/testutils"
)

var contentIDPattern = regexp.MustCompile(`^DF[0-9a-zA-Z]{2}[0-9a-zA-Z]{12}$`)

type BuilderTestSuite struct {
	suite.Suite
	docs *dataforged.Set
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderTestSuite))
}

func (s *BuilderTestSuite) SetupTest() {
	s.docs = testutils.CreateTestDocumentSet(s.T())
}

func (s *BuilderTestSuite) TestAssignsIdentifiersInTraversalOrder() {
	m := idmap.Build(s.docs)

	testCases := []struct {
		key      string
		expected string
	}{
		{key: "Assets / Command Vehicle / Starship", expected: "DF01000000000001"},
		{key: "Assets / Command Vehicle / Starship / Abilities / 2", expected: "DF01000000000003"},
		{key: "Encounters / Chiton", expected: "DF02000000000001"},
		{key: "Moves / Face Danger", expected: testutils.FaceDangerID},
		{key: "Moves / Face Danger / Outcomes", expected: "DF03000000000002"},
		{key: "Moves / Face Danger / Outcomes / Miss", expected: "DF03000000000005"},
		{key: "Moves / Pay the Price", expected: testutils.PayThePriceID},
		{key: "Oracles / Core / Action / 2-2", expected: "DF04000000000004"},
		{key: "Oracles / Core / Theme", expected: "DF04000000000005"},
		{key: "Setting Truths / Cataclysm", expected: "DF05000000000001"},
		{key: "Setting Truths / Cataclysm / 34-67 / 2", expected: "DF05000000000005"},
	}

	for _, tc := range testCases {
		s.Run(tc.key, func() {
			id, ok := m.Lookup(tc.key)
			s.True(ok)
			s.Equal(tc.expected, id)
		})
	}
}

func (s *BuilderTestSuite) TestEveryIDIsMappedOnceAndUniquely() {
	m := idmap.Build(s.docs)
	s.Equal(21, m.Len())

	seen := make(map[string]string)
	for _, key := range m.Keys() {
		id, _ := m.Lookup(key)
		s.Regexp(contentIDPattern, id)
		if other, dup := seen[id]; dup {
			s.Failf("duplicate identifier", "%s assigned to %s and %s", id, other, key)
		}
		seen[id] = key
	}
}

func (s *BuilderTestSuite) TestDeterministic() {
	first, err := json.Marshal(idmap.Build(s.docs))
	s.Require().NoError(err)
	second, err := json.Marshal(idmap.Build(testutils.CreateTestDocumentSet(s.T())))
	s.Require().NoError(err)

	s.Equal(string(first), string(second))
	s.True(strings.HasPrefix(string(first), `{"Assets / Command Vehicle / Starship":"DF01000000000001"`))
}

func (s *BuilderTestSuite) TestRootObjectIsVisited() {
	root, err := dataforged.Parse([]byte(`{"$id":"Root","Children":[{"$id":"Child"}]}`))
	s.Require().NoError(err)

	set := dataforged.NewSet()
	set.Add(dataforged.Moves, root)
	m := idmap.Build(set)

	s.Equal("DF01000000000001", m.Resolve("Root"))
	s.Equal("DF01000000000002", m.Resolve("Child"))
}

func (s *BuilderTestSuite) TestDeepNestingUsesExplicitStack() {
	set := dataforged.NewSet()
	set.Add(dataforged.Assets, buildNested(20000))
	m := idmap.Build(set)
	s.Equal("DF01000000000001", m.Resolve("Deep"))
}

func (s *BuilderTestSuite) TestIgnoresEmptyAndNonStringIDs() {
	root, err := dataforged.Parse([]byte(`[{"$id":""},{"$id":7},{"$id":"Kept"}]`))
	s.Require().NoError(err)

	set := dataforged.NewSet()
	set.Add(dataforged.Assets, root)
	m := idmap.Build(set)

	s.Equal(1, m.Len())
	s.Equal("DF01000000000001", m.Resolve("Kept"))
}

func (s *BuilderTestSuite) TestDuplicateIDKeepsPositionTakesLaterValue() {
	root, err := dataforged.Parse([]byte(`[{"$id":"A"},{"$id":"B"},{"$id":"A"}]`))
	s.Require().NoError(err)

	set := dataforged.NewSet()
	set.Add(dataforged.Assets, root)
	m := idmap.Build(set)

	s.Equal([]string{"A", "B"}, m.Keys())
	s.Equal("DF01000000000003", m.Resolve("A"))
}

// buildNested wraps a $id object in depth arrays without going through the parser
func buildNested(depth int) any {
	leaf := dataforged.NewObject()
	leaf.Set(dataforged.FieldID, "Deep")
	var v any = leaf
	for i := 0; i < depth; i++ {
		v = []any{v}
	}
	return v
}
