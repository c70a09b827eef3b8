package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ironsworn-content/internal/orchestrators/roll"
)

func newRollCmd(_ *app) *cobra.Command {
	input := &roll.ActionRollInput{}

	cmd := &cobra.Command{
		Use:   "roll [directive|stat]",
		Short: "Make an action roll for an inline-roll directive",
		Long: `Rolls an action die plus the stat value and adds against two challenge dice.
The argument is a directive as written into content, or a bare stat name.

  roll "((rollplus edge))" --value 2
  roll heart --value 3 --adds 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := roll.NewOrchestrator(&roll.Config{})
			if err != nil {
				return err
			}

			input.Directive = args[0]
			out, err := svc.ActionRoll(cmd.Context(), input)
			if err != nil {
				return err
			}

			r := out.Roll
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Action: d6(%d) + %s(%d) + adds(%d) = %d\n", r.ActionDie, r.Stat, r.StatValue, r.Adds, r.ActionScore)
			fmt.Fprintf(w, "Challenge: %d, %d\n", r.ChallengeDice[0], r.ChallengeDice[1])
			if r.Match {
				fmt.Fprintf(w, "%s (match)\n", r.Outcome)
			} else {
				fmt.Fprintf(w, "%s\n", r.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&input.StatValue, "value", 0, "Stat value")
	cmd.Flags().IntVar(&input.Adds, "adds", 0, "Adds")

	return cmd
}
