package dataforged_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

type CodecTestSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) TestParseKeepsKeyOrder() {
	root, err := dataforged.Parse([]byte(`{"Zeta":1,"Alpha":{"$id":"Moves / Face Danger","Text":"x"},"Mid":[true,null,"s"]}`))
	s.Require().NoError(err)

	obj, ok := dataforged.AsObject(root)
	s.Require().True(ok)
	s.Equal([]string{"Zeta", "Alpha", "Mid"}, obj.Keys())

	zeta, _ := obj.Get("Zeta")
	s.Equal(json.Number("1"), zeta)

	id, ok := dataforged.StringField(obj.Values()[1], dataforged.FieldID)
	s.True(ok)
	s.Equal("Moves / Face Danger", id)

	mid, ok := dataforged.ArrayField(obj, "Mid")
	s.Require().True(ok)
	s.Equal([]any{true, nil, "s"}, mid)
}

func (s *CodecTestSuite) TestParseRejectsNonJSON() {
	_, err := dataforged.Parse([]byte("<html>404: Not Found</html>"))
	s.Require().Error(err)
	s.True(errors.IsDataLoss(err))
}

func (s *CodecTestSuite) TestEncodeFormatting() {
	root, err := dataforged.Parse([]byte(`[{"b":1.50,"a":"<p>x & y</p>","e":[]}]`))
	s.Require().NoError(err)

	out, err := dataforged.Marshal(root)
	s.Require().NoError(err)

	expected := "[\n" +
		"  {\n" +
		"    \"b\": 1.50,\n" +
		"    \"a\": \"<p>x & y</p>\",\n" +
		"    \"e\": []\n" +
		"  }\n" +
		"]\n"
	s.Equal(expected, string(out))
}

func (s *CodecTestSuite) TestRoundTripIsStable() {
	input := []byte(`{"Setting Truths":[{"Name":"Cataclysm","Table":[{"Floor":1,"Ceiling":33,"Description":"The sun plague"}]}]}`)

	first, err := dataforged.Parse(input)
	s.Require().NoError(err)
	firstOut, err := dataforged.Marshal(first)
	s.Require().NoError(err)

	second, err := dataforged.Parse(firstOut)
	s.Require().NoError(err)
	secondOut, err := dataforged.Marshal(second)
	s.Require().NoError(err)

	s.Equal(string(firstOut), string(secondOut))
}

func (s *CodecTestSuite) TestObjectSetAndDelete() {
	obj := dataforged.NewObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 3)
	s.Equal([]string{"a", "b"}, obj.Keys())

	v, ok := obj.Get("a")
	s.True(ok)
	s.Equal(3, v)

	obj.Delete("a")
	s.Equal([]string{"b"}, obj.Keys())
	s.Equal(1, obj.Len())
}

func (s *CodecTestSuite) TestObjectUnmarshalJSON() {
	var obj dataforged.Object
	s.Require().NoError(json.Unmarshal([]byte(`{"y":1,"x":2}`), &obj))
	s.Equal([]string{"y", "x"}, obj.Keys())

	s.Error(json.Unmarshal([]byte(`[1]`), &obj))
}

func (s *CodecTestSuite) TestSet() {
	set := dataforged.NewSet()
	set.Add(dataforged.Moves, []any{})
	set.Add(dataforged.Assets, []any{})
	set.Add(dataforged.Moves, []any{"replaced"})

	s.Equal(2, set.Len())
	s.Equal(dataforged.Moves, set.Documents()[0].Name)

	root, err := set.Root(dataforged.Moves)
	s.Require().NoError(err)
	s.Equal([]any{"replaced"}, root)

	_, err = set.Root(dataforged.Oracles)
	s.Error(err)
}

func (s *CodecTestSuite) TestNames() {
	s.Equal("starforged-setting_truths.json", dataforged.SettingTruths.SourceFile())
	s.Equal("sf-setting-truths.json", dataforged.OutputSettingTruths.FileName())
	s.Equal("sf-ids.json", dataforged.OutputIDs.FileName())
}
