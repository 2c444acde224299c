package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
	"github.com/Sumatoshi-tech/lookup3/pkg/observability"
)

const flagNoColor = "no-color"

// ErrVectorMismatch is returned when any reference vector fails.
var ErrVectorMismatch = errors.New("reference vector mismatch")

// NewVectorsCommand creates the vectors subcommand.
func NewVectorsCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Check the published lookup3 reference vectors under every strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			}

			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runVectors(ctx, cmd, s, lookup3.ReferenceVectors())
			})
		},
	}

	cmd.Flags().BoolVar(&noColor, flagNoColor, false, "disable colored output")

	return cmd
}

func runVectors(ctx context.Context, cmd *cobra.Command, s *session, vectors []lookup3.Vector) error {
	pass := color.New(color.FgGreen).Sprint("PASS")
	fail := color.New(color.FgRed).Sprint("FAIL")

	strategies := append([]lookup3.Strategy{lookup3.StrategyAuto}, lookup3.Strategies()...)

	tbl := newTable(table.Row{"Vector", "Strategy", "Want", "Got", "Result"})

	var total, failed int

	for _, v := range vectors {
		checks := strategies
		if v.WordInput {
			checks = strategies[:1]
		}

		for _, strategy := range checks {
			start := time.Now()
			c, b, ok := v.Check(strategy)
			s.metrics.RecordHash(ctx, strategy.String(), vectorVariant(v), len(v.Input), time.Since(start))

			total++

			result := pass
			if !ok {
				failed++
				result = fail
			}

			strategyLabel := strategy.String()
			if v.WordInput {
				strategyLabel = strategyWordInput
			}

			tbl.AppendRow(table.Row{v.Name, strategyLabel, vectorValue(v.Want, v.WantB, v.Dual), vectorValue(c, b, v.Dual), result})
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d of %d checks succeeded", total-failed, total)})

	_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks failed", ErrVectorMismatch, failed, total)
	}

	return nil
}

func vectorVariant(v lookup3.Vector) string {
	switch {
	case v.WordInput && v.Dual:
		return observability.VariantDualWord
	case v.WordInput:
		return observability.VariantWord
	case v.Dual:
		return observability.VariantDual
	default:
		return observability.VariantSingle
	}
}

func vectorValue(c, b uint32, dual bool) string {
	if dual {
		return hex32(c) + " " + hex32(b)
	}

	return hex32(c)
}
