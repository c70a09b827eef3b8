// Package processors rewrites the text fields of each content document
package processors

import (
	"log/slog"
	"regexp"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/services/markup"
)

// moveTextPattern separates the lead-in of a move from its three outcomes
var moveTextPattern = regexp.MustCompile(`(?s)(.+?)(On a \*\*strong hit\*\*, .+?)(On a \*\*weak hit\*\*, .+?)(On a \*\*miss\*\*, .+)`)

// Renderer renders text in block or inline mode
type Renderer interface {
	Render(src string, mode markup.Mode) (string, error)
}

// Processor rewrites one document of the set in place and returns its root
type Processor func(r Renderer, docs *dataforged.Set) (any, error)

// MoveText is a move's text split at its outcome labels
type MoveText struct {
	Description string
	StrongHit   string
	WeakHit     string
	Miss        string
}

// SplitMoveText splits text into lead-in and outcomes. It reports false
// when the three labeled outcome sections are not all present.
func SplitMoveText(text string) (MoveText, bool) {
	m := moveTextPattern.FindStringSubmatch(text)
	if m == nil {
		return MoveText{}, false
	}
	return MoveText{
		Description: m[1],
		StrongHit:   m[2],
		WeakHit:     m[3],
		Miss:        m[4],
	}, true
}

// Assets renders every ability text
func Assets(r Renderer, docs *dataforged.Set) (any, error) {
	slog.Info("Assets:")

	root, err := docs.Root(dataforged.Assets)
	if err != nil {
		return nil, err
	}

	assets, _ := dataforged.AsArray(root)
	for _, asset := range assets {
		abilities, _ := dataforged.ArrayField(asset, dataforged.FieldAbilities)
		for _, ability := range abilities {
			if err := renderField(r, ability, dataforged.FieldText, markup.Block); err != nil {
				return nil, err
			}
		}
	}
	return root, nil
}

// Encounters has no markup to rewrite yet
func Encounters(_ Renderer, docs *dataforged.Set) (any, error) {
	slog.Info("Encounters:")
	return docs.Root(dataforged.Encounters)
}

// Moves renders the move text, derives the description from its lead-in
// and renders each outcome text that is present
func Moves(r Renderer, docs *dataforged.Set) (any, error) {
	slog.Info("Moves:")

	root, err := docs.Root(dataforged.Moves)
	if err != nil {
		return nil, err
	}

	moves, _ := dataforged.AsArray(root)
	for _, v := range moves {
		move, ok := dataforged.AsObject(v)
		if !ok {
			continue
		}
		if err := processMove(r, move); err != nil {
			name, _ := dataforged.StringField(move, dataforged.FieldName)
			return nil, errors.Wrapf(err, "failed to process move %q", name)
		}
	}
	return root, nil
}

func processMove(r Renderer, move *dataforged.Object) error {
	if text, ok := dataforged.StringField(move, dataforged.FieldText); ok {
		split, matched := SplitMoveText(text)

		rendered, err := r.Render(text, markup.Block)
		if err != nil {
			return err
		}
		move.Set(dataforged.FieldText, rendered)

		description := rendered
		if matched {
			description, err = r.Render(split.Description, markup.Block)
			if err != nil {
				return err
			}
		}
		move.Set(dataforged.FieldDescription, description)
	}

	outcomes, ok := dataforged.ObjectField(move, dataforged.FieldOutcomes)
	if !ok {
		return nil
	}
	for _, key := range dataforged.Outcomes {
		outcome, ok := outcomes.Get(key)
		if !ok {
			continue
		}
		if obj, ok := dataforged.AsObject(outcome); ok {
			if _, hasText := dataforged.StringField(obj, dataforged.FieldText); !hasText {
				obj.Delete(dataforged.FieldText)
				continue
			}
		}
		if err := renderField(r, outcome, dataforged.FieldText, markup.Inline); err != nil {
			return err
		}
	}
	return nil
}

// Oracles renders oracle descriptions and table results across the
// category, oracle, table nesting
func Oracles(r Renderer, docs *dataforged.Set) (any, error) {
	slog.Info("Oracles:")

	root, err := docs.Root(dataforged.Oracles)
	if err != nil {
		return nil, err
	}

	categories, _ := dataforged.AsArray(root)
	for _, category := range categories {
		oracles, _ := dataforged.ArrayField(category, dataforged.FieldOracles)
		for _, oracle := range oracles {
			if err := renderField(r, oracle, dataforged.FieldDescription, markup.Block); err != nil {
				return nil, err
			}
			rows, _ := dataforged.ArrayField(oracle, dataforged.FieldTable)
			for _, row := range rows {
				if err := renderField(r, row, dataforged.FieldResult, markup.Inline); err != nil {
					return nil, err
				}
			}
		}
	}
	return root, nil
}

// renderField replaces a string field of v with its rendered form.
// Absent, empty and non-string fields are skipped.
func renderField(r Renderer, v any, key string, mode markup.Mode) error {
	obj, ok := dataforged.AsObject(v)
	if !ok {
		return nil
	}
	text, ok := dataforged.StringField(obj, key)
	if !ok {
		return nil
	}
	rendered, err := r.Render(text, mode)
	if err != nil {
		return err
	}
	obj.Set(key, rendered)
	return nil
}
