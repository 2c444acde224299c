package commands

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
	"github.com/Sumatoshi-tech/lookup3/pkg/observability"
	"github.com/Sumatoshi-tech/lookup3/pkg/safeconv"
)

const (
	flagSeed      = "seed"
	flagSecondary = "secondary"
	flagDual      = "dual"
	flagStrategy  = "strategy"
	flagHex       = "hex"
	flagFile      = "file"

	stdinPath = "-"
)

// ErrNoInput is returned when hash has neither literals nor --file.
var ErrNoInput = errors.New("nothing to hash: pass literals or --file")

type hashOptions struct {
	seed      string
	secondary string
	strategy  string
	format    string
	file      string
	dual      bool
	hexInput  bool
}

type hashInput struct {
	label string
	data  []byte
}

type hashResult struct {
	Input     string `json:"input"               yaml:"input"`
	Strategy  string `json:"strategy"            yaml:"strategy"`
	Seed      string `json:"seed"                yaml:"seed"`
	Secondary string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Hash      string `json:"hash"                yaml:"hash"`
	HashB     string `json:"hash_b,omitempty"    yaml:"hash_b,omitempty"`
	Length    int    `json:"length"              yaml:"length"`
}

// NewHashCommand creates the hash subcommand.
func NewHashCommand() *cobra.Command {
	opts := &hashOptions{}

	cmd := &cobra.Command{
		Use:   "hash [literal...]",
		Short: "Hash literal strings, hex bytes or a file with lookup3",
		Example: `  lookup3 hash "Four score and seven years ago"
  lookup3 hash --seed 0xdeadbeef --dual ""
  lookup3 hash --hex 68656c6c6f --format json
  lookup3 hash --file data.bin --strategy byte`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runHash(ctx, cmd, s, opts, args)
			})
		},
	}

	cmd.Flags().StringVar(&opts.seed, flagSeed, "", "primary seed (decimal or 0x hex); defaults to hash.seed")
	cmd.Flags().StringVar(&opts.secondary, flagSecondary, "", "secondary seed for --dual; defaults to hash.secondary")
	cmd.Flags().StringVar(&opts.strategy, flagStrategy, "", "read strategy: auto, word, halfword or byte; defaults to hash.strategy")
	cmd.Flags().StringVar(&opts.format, flagFormat, formatText, flagFormatUsage)
	cmd.Flags().StringVar(&opts.file, flagFile, "", "hash the contents of a file ('-' for stdin)")
	cmd.Flags().BoolVar(&opts.dual, flagDual, false, "compute both 32-bit outputs from a primary and a secondary seed")
	cmd.Flags().BoolVar(&opts.hexInput, flagHex, false, "decode each literal as hex bytes")

	return cmd
}

func runHash(ctx context.Context, cmd *cobra.Command, s *session, opts *hashOptions, args []string) error {
	err := validateFormat(opts.format)
	if err != nil {
		return err
	}

	seed, secondary, err := resolveSeeds(s, opts.seed, opts.secondary)
	if err != nil {
		return err
	}

	strategy := s.cfg.HashStrategy()
	if opts.strategy != "" {
		strategy, err = lookup3.ParseStrategy(opts.strategy)
		if err != nil {
			return err
		}
	}

	inputs, err := collectHashInputs(cmd.InOrStdin(), opts, args)
	if err != nil {
		return err
	}

	results := make([]hashResult, 0, len(inputs))

	for _, in := range inputs {
		results = append(results, hashOne(ctx, s, in, strategy, seed, secondary, opts.dual))
	}

	s.logger.DebugContext(ctx, "hashed inputs",
		slog.Int("count", len(results)), slog.String("strategy", strategy.String()))

	out := cmd.OutOrStdout()
	if opts.format != formatText {
		return writeStructured(out, opts.format, results)
	}

	header := table.Row{"Input", "Length", "Strategy", "Seed", "Hash"}
	if opts.dual {
		header = table.Row{"Input", "Length", "Strategy", "Seed", "Secondary", "Hash", "Hash B"}
	}

	tbl := newTable(header)

	for _, r := range results {
		if opts.dual {
			tbl.AppendRow(table.Row{r.Input, r.Length, r.Strategy, r.Seed, r.Secondary, r.Hash, r.HashB})

			continue
		}

		tbl.AppendRow(table.Row{r.Input, r.Length, r.Strategy, r.Seed, r.Hash})
	}

	_, err = fmt.Fprintln(out, tbl.Render())

	return err
}

func hashOne(
	ctx context.Context, s *session, in hashInput, strategy lookup3.Strategy, seed, secondary uint32, dual bool,
) hashResult {
	resolved := strategy
	if resolved == lookup3.StrategyAuto {
		resolved = lookup3.SelectStrategy(in.data)
	}

	result := hashResult{
		Input:    in.label,
		Length:   len(in.data),
		Strategy: resolved.String(),
		Seed:     hex32(seed),
	}

	start := time.Now()

	if dual {
		c, b := lookup3.HashBytes2With(strategy, in.data, seed, secondary)
		s.metrics.RecordHash(ctx, resolved.String(), observability.VariantDual, len(in.data), time.Since(start))

		result.Secondary = hex32(secondary)
		result.Hash = hex32(c)
		result.HashB = hex32(b)

		return result
	}

	c := lookup3.HashBytesWith(strategy, in.data, seed)
	s.metrics.RecordHash(ctx, resolved.String(), observability.VariantSingle, len(in.data), time.Since(start))

	result.Hash = hex32(c)

	return result
}

func collectHashInputs(stdin io.Reader, opts *hashOptions, args []string) ([]hashInput, error) {
	inputs := make([]hashInput, 0, len(args)+1)

	for _, arg := range args {
		data := []byte(arg)

		if opts.hexInput {
			decoded, err := hex.DecodeString(arg)
			if err != nil {
				return nil, fmt.Errorf("decode hex %q: %w", arg, err)
			}

			data = decoded
		}

		inputs = append(inputs, hashInput{label: arg, data: data})
	}

	if opts.file != "" {
		data, err := readInputFile(stdin, opts.file)
		if err != nil {
			return nil, err
		}

		inputs = append(inputs, hashInput{label: opts.file, data: data})
	}

	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	return inputs, nil
}

func readInputFile(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	return data, nil
}

// resolveSeeds applies flag overrides on top of the configured seeds.
func resolveSeeds(s *session, seedFlag, secondaryFlag string) (seed, secondary uint32, err error) {
	seed, secondary = s.cfg.Hash.Seed, s.cfg.Hash.Secondary

	if seedFlag != "" {
		seed, err = safeconv.ParseUint32(seedFlag)
		if err != nil {
			return 0, 0, fmt.Errorf("--%s: %w", flagSeed, err)
		}
	}

	if secondaryFlag != "" {
		secondary, err = safeconv.ParseUint32(secondaryFlag)
		if err != nil {
			return 0, 0, fmt.Errorf("--%s: %w", flagSecondary, err)
		}
	}

	return seed, secondary, nil
}
