package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
)

// Identifiers assigned to the fixture documents, in request order
const (
	FaceDangerID  = "DF03000000000001"
	PayThePriceID = "DF03000000000006"
)

// AssetsJSON is a trimmed starforged-assets.json
const AssetsJSON = `[
  {
    "$id": "Assets / Command Vehicle / Starship",
    "Name": "Starship",
    "Abilities": [
      {
        "$id": "Assets / Command Vehicle / Starship / Abilities / 1",
        "Text": "When you [Face Danger](Starforged/Moves/Adventure/Face_Danger#Face Danger) in your ship, roll +edge."
      },
      {
        "$id": "Assets / Command Vehicle / Starship / Abilities / 2",
        "Text": "Consult the [Derelict](Starforged/Oracles/Derelicts/Type#Derelict Type) table."
      }
    ]
  }
]`

// EncountersJSON is a trimmed starforged-encounters.json
const EncountersJSON = `[
  {
    "$id": "Encounters / Chiton",
    "Name": "Chiton",
    "Rank": 2,
    "Features": ["Insect-like", "Armored carapace"]
  }
]`

// MovesJSON is a trimmed starforged-moves.json
const MovesJSON = `[
  {
    "$id": "Moves / Face Danger",
    "Name": "Face Danger",
    "Text": "When you attempt something risky, envision your action and roll +edge.\n\nOn a **strong hit**, you are successful. Take +1 momentum.\n\nOn a **weak hit**, you succeed, but not without a cost.\n\nOn a **miss**, you fail. [Pay the Price](Starforged/Moves/Fate/Pay_the_Price#Pay the Price).",
    "Outcomes": {
      "$id": "Moves / Face Danger / Outcomes",
      "Strong Hit": {
        "$id": "Moves / Face Danger / Outcomes / Strong Hit",
        "Text": "You are **successful**. Take +1 momentum."
      },
      "Weak Hit": {
        "$id": "Moves / Face Danger / Outcomes / Weak Hit",
        "Text": "You succeed, but not without a cost."
      },
      "Miss": {
        "$id": "Moves / Face Danger / Outcomes / Miss",
        "Text": "You fail. [Pay the Price](Starforged/Moves/Fate/Pay_the_Price#Pay the Price)."
      }
    }
  },
  {
    "$id": "Moves / Pay the Price",
    "Name": "Pay the Price",
    "Text": "When you suffer the outcome of a move, choose one.\n\n* Make the most obvious negative outcome happen.\n* Roll on the table below."
  }
]`

// OraclesJSON is a trimmed starforged-oracles.json
const OraclesJSON = `[
  {
    "$id": "Oracles / Core",
    "Name": "Core",
    "Oracles": [
      {
        "$id": "Oracles / Core / Action",
        "Name": "Action",
        "Description": "Use this table to inspire a *discovery*.",
        "Table": [
          {"$id": "Oracles / Core / Action / 1-1", "Floor": 1, "Ceiling": 1, "Result": "Abandon"},
          {"$id": "Oracles / Core / Action / 2-2", "Floor": 2, "Ceiling": 2, "Result": "**Acquire** +supply"}
        ]
      },
      {
        "$id": "Oracles / Core / Theme",
        "Name": "Theme",
        "Table": [
          {"$id": "Oracles / Core / Theme / 1-100", "Floor": 1, "Ceiling": 100, "Result": "Ability"}
        ]
      }
    ]
  }
]`

// SettingTruthsJSON is a trimmed starforged-setting_truths.json
const SettingTruthsJSON = `{
  "Setting Truths": [
    {
      "$id": "Setting Truths / Cataclysm",
      "Name": "Cataclysm",
      "Table": [
        {
          "$id": "Setting Truths / Cataclysm / 1-33",
          "Description": "The Sun Plague extinguished the stars.",
          "Details": "Those who escaped were saved.",
          "Quest Starter": "Find the source of the plague."
        },
        {
          "$id": "Setting Truths / Cataclysm / 34-67",
          "Description": "Interdimensional entities invaded.",
          "Details": "They came through rifts.",
          "Quest Starter": "Close the rift.",
          "Table": [
            {"$id": "Setting Truths / Cataclysm / 34-67 / 1", "Description": "They fled."},
            {"$id": "Setting Truths / Cataclysm / 34-67 / 2", "Description": "They stayed."}
          ]
        }
      ]
    }
  ]
}`

// DataforgedSources maps each upstream file name to its fixture body
func DataforgedSources() map[string]string {
	return map[string]string{
		dataforged.Assets.SourceFile():        AssetsJSON,
		dataforged.Encounters.SourceFile():    EncountersJSON,
		dataforged.Moves.SourceFile():         MovesJSON,
		dataforged.Oracles.SourceFile():       OraclesJSON,
		dataforged.SettingTruths.SourceFile(): SettingTruthsJSON,
	}
}

// CreateTestDocumentSet parses every fixture into a set in request order
func CreateTestDocumentSet(t *testing.T) *dataforged.Set {
	t.Helper()

	sources := DataforgedSources()
	set := dataforged.NewSet()
	for _, name := range dataforged.Names {
		root, err := dataforged.Parse([]byte(sources[name.SourceFile()]))
		require.NoError(t, err, "failed to parse fixture %s", name)
		set.Add(name, root)
	}
	return set
}
