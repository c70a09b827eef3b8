// Package roll resolves the inline-roll directives written into content
// text as Ironsworn action rolls
package roll

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/services/markup"
)

const (
	ActionDieSize    = 6
	ChallengeDieSize = 10
	ChallengeDice    = 2

	// MaxActionScore caps die + stat + adds
	MaxActionScore = 10

	MaxStatValue = 5
)

var directivePattern = regexp.MustCompile(`^\(\(rollplus ([A-Za-z]+)\)\)$`)

// Service defines the interface for roll operations
type Service interface {
	ActionRoll(ctx context.Context, input *ActionRollInput) (*ActionRollOutput, error)
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Roller == nil {
		c.Roller = dice.DefaultRoller
	}
	return nil
}

type orchestrator struct {
	roller dice.Roller
}

// NewOrchestrator creates a new roll orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{roller: cfg.Roller}, nil
}

// ParseDirective accepts either an inline-roll directive such as
// "((rollplus edge))" or a bare stat name and returns the lower-cased stat
func ParseDirective(s string) (string, error) {
	s = strings.TrimSpace(s)
	stat := s
	if m := directivePattern.FindStringSubmatch(s); m != nil {
		stat = m[1]
	}

	stat = strings.ToLower(stat)
	if !slices.Contains(markup.Stats, stat) {
		return "", errors.InvalidArgumentf("unknown stat %q", s)
	}
	return stat, nil
}

// ActionRoll rolls the action die against the challenge dice
func (o *orchestrator) ActionRoll(ctx context.Context, input *ActionRollInput) (*ActionRollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	stat, err := ParseDirective(input.Directive)
	if err != nil {
		vb.InvalidField("Directive", err.Error())
	}
	if input.StatValue < 0 || input.StatValue > MaxStatValue {
		vb.InvalidField("StatValue", "must be between 0 and 5")
	}
	if input.Adds < 0 {
		vb.InvalidField("Adds", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	actionDie, err := o.roller.Roll(ActionDieSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll action die")
	}

	challenge, err := o.roller.RollN(ChallengeDice, ChallengeDieSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll challenge dice")
	}
	if len(challenge) != ChallengeDice {
		return nil, errors.Internalf("expected %d challenge dice, got %d", ChallengeDice, len(challenge))
	}

	score := min(actionDie+input.StatValue+input.Adds, MaxActionScore)

	result := &ActionRoll{
		Stat:          stat,
		ActionDie:     actionDie,
		StatValue:     input.StatValue,
		Adds:          input.Adds,
		ActionScore:   score,
		ChallengeDice: [2]int{challenge[0], challenge[1]},
		Outcome:       resolve(score, challenge[0], challenge[1]),
		Match:         challenge[0] == challenge[1],
	}

	slog.DebugContext(ctx, "Action roll",
		"stat", stat,
		"score", score,
		"challenge", challenge,
		"outcome", result.Outcome)

	return &ActionRollOutput{Roll: result}, nil
}

// resolve compares the action score with each challenge die; a tie goes
// to the challenge die
func resolve(score, c1, c2 int) Outcome {
	beats := 0
	if score > c1 {
		beats++
	}
	if score > c2 {
		beats++
	}

	switch beats {
	case 2:
		return OutcomeStrongHit
	case 1:
		return OutcomeWeakHit
	default:
		return OutcomeMiss
	}
}

// Outcome is the result tier of an action roll
type Outcome string

// Outcomes use the labels of a move's outcome keys
const (
	OutcomeStrongHit Outcome = dataforged.OutcomeStrongHit
	OutcomeWeakHit   Outcome = dataforged.OutcomeWeakHit
	OutcomeMiss      Outcome = dataforged.OutcomeMiss
)
