package processors

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
)

// Truth is one selectable option of a setting truth category
type Truth struct {
	Category    string   `json:"category"`
	Description string   `json:"Description"`
	Details     string   `json:"Details"`
	Quest       string   `json:"Quest"`
	Suboptions  []string `json:"suboptions,omitempty"`
}

// FlattenSettingTruths lists every truth option with its suboptions
func FlattenSettingTruths(root any) []Truth {
	var truths []Truth

	categories, _ := dataforged.ArrayField(root, dataforged.FieldTruths)
	for _, category := range categories {
		categoryName, _ := dataforged.StringField(category, dataforged.FieldName)
		options, _ := dataforged.ArrayField(category, dataforged.FieldTable)
		for _, option := range options {
			truth := Truth{Category: categoryName}
			truth.Description, _ = dataforged.StringField(option, dataforged.FieldDescription)
			truth.Details, _ = dataforged.StringField(option, dataforged.FieldDetails)
			truth.Quest, _ = dataforged.StringField(option, dataforged.FieldQuest)

			suboptions, _ := dataforged.ArrayField(option, dataforged.FieldTable)
			for _, sub := range suboptions {
				description, _ := dataforged.StringField(sub, dataforged.FieldDescription)
				truth.Suboptions = append(truth.Suboptions, description)
			}
			truths = append(truths, truth)
		}
	}
	return truths
}

// SuboptionKey names the nth (1-based) suboption the way the truth
// dialog stores it
func SuboptionKey(n int) string {
	return fmt.Sprintf("suboption%d", n)
}

// Object renders the truth the way the truth dialog stores it, with one
// suboptionN key per suboption
func (t Truth) Object() *dataforged.Object {
	obj := dataforged.NewObject()
	obj.Set(dataforged.FieldDescription, t.Description)
	obj.Set(dataforged.FieldDetails, t.Details)
	obj.Set("Quest", t.Quest)
	for i, sub := range t.Suboptions {
		obj.Set(SuboptionKey(i+1), sub)
	}
	return obj
}

// SettingTruths flattens the truth options for the log and returns the
// document unchanged
func SettingTruths(_ Renderer, docs *dataforged.Set) (any, error) {
	slog.Info("Truths:")

	root, err := docs.Root(dataforged.SettingTruths)
	if err != nil {
		return nil, err
	}

	truths := FlattenSettingTruths(root)
	slog.Debug("Flattened setting truths", "count", len(truths))
	return root, nil
}
