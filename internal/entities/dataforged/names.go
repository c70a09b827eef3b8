// Package dataforged holds the content documents fetched from the Dataforged
// dataset and an order-preserving JSON model for them.
package dataforged

import "fmt"

// Name is the logical file name of a content document
type Name string

// Content documents, in request order
const (
	Assets        Name = "assets.json"
	Encounters    Name = "encounters.json"
	Moves         Name = "moves.json"
	Oracles       Name = "oracles.json"
	SettingTruths Name = "setting_truths.json"
)

// Names lists every content document in the order it is requested.
// Identifier file indexes follow this order.
var Names = []Name{Assets, Encounters, Moves, Oracles, SettingTruths}

// SourceFile returns the file name of the document in the upstream dataset
func (n Name) SourceFile() string {
	return "starforged-" + string(n)
}

// OutputName is the base name written under the system assets directory
type OutputName string

// Output names
const (
	OutputAssets        OutputName = "assets"
	OutputEncounters    OutputName = "encounters"
	OutputMoves         OutputName = "moves"
	OutputOracles       OutputName = "oracles"
	OutputSettingTruths OutputName = "setting-truths"
	OutputIDs           OutputName = "ids"
)

// FileName returns the on-disk name, e.g. sf-moves.json
func (o OutputName) FileName() string {
	return fmt.Sprintf("sf-%s.json", o)
}

// Well-known field names of the upstream schema
const (
	FieldID          = "$id"
	FieldText        = "Text"
	FieldDescription = "Description"
	FieldAbilities   = "Abilities"
	FieldOutcomes    = "Outcomes"
	FieldOracles     = "Oracles"
	FieldTable       = "Table"
	FieldResult      = "Result"
	FieldDetails     = "Details"
	FieldQuest       = "Quest Starter"
	FieldName        = "Name"
	FieldTruths      = "Setting Truths"

	OutcomeStrongHit = "Strong Hit"
	OutcomeWeakHit   = "Weak Hit"
	OutcomeMiss      = "Miss"
)

// Outcomes lists the outcome keys of a move in display order
var Outcomes = []string{OutcomeStrongHit, OutcomeWeakHit, OutcomeMiss}
