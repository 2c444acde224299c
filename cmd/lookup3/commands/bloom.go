package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/bloom"
	"github.com/Sumatoshi-tech/lookup3/pkg/config"
	"github.com/Sumatoshi-tech/lookup3/pkg/observability"
	"github.com/Sumatoshi-tech/lookup3/pkg/safeconv"
	"github.com/Sumatoshi-tech/lookup3/pkg/units"
)

const (
	flagBits        = "bits"
	flagHashes      = "hashes"
	flagExpected    = "expected"
	flagFP          = "fp"
	flagAdd         = "add"
	flagAddFile     = "add-file"
	flagQuery       = "query"
	flagLoad        = "load"
	flagSave        = "save"
	flagRandomWords = "random-words"

	defaultFP = 0.01

	savePerm = 0o600

	// Random words are five printable ASCII characters in [33, 128).
	randomWordLen  = 5
	randomWordLow  = 33
	randomWordHigh = 128

	outcomeOK = "ok"
)

// ErrFalseNegative is returned when a value added to the filter is reported absent.
var ErrFalseNegative = errors.New("bloom filter lost an added value")

type bloomOptions struct {
	seed        string
	addFile     string
	load        string
	save        string
	format      string
	add         []string
	query       []string
	fp          float64
	bits        uint
	hashes      uint
	expected    uint
	randomWords int
}

type bloomQuery struct {
	Value      string `json:"value"      yaml:"value"`
	Membership string `json:"membership" yaml:"membership"`
}

type bloomReport struct {
	Size           string       `json:"size"            yaml:"size"`
	Seed           string       `json:"seed"            yaml:"seed"`
	Queries        []bloomQuery `json:"queries"         yaml:"queries"`
	Bits           uint         `json:"bits"            yaml:"bits"`
	Hashes         uint         `json:"hashes"          yaml:"hashes"`
	EstimatedCount uint         `json:"estimated_count" yaml:"estimated_count"`
	FillRatio      float64      `json:"fill_ratio"      yaml:"fill_ratio"`
	RandomWords    int          `json:"random_words"    yaml:"random_words"`
}

// NewBloomCommand creates the bloom subcommand.
func NewBloomCommand() *cobra.Command {
	opts := &bloomOptions{}

	cmd := &cobra.Command{
		Use:   "bloom",
		Short: "Build, query and persist a lookup3-backed Bloom filter",
		Example: `  lookup3 bloom --bits 256 --hashes 10 --add apple,pear --query apple,plum
  lookup3 bloom --expected 100000 --fp 0.001 --add-file words.txt --save words.bloom
  lookup3 bloom --load words.bloom --query banana
  lookup3 bloom --bits 256 --hashes 10 --random-words 300`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runBloom(ctx, cmd, s, opts)
			})
		},
	}

	cmd.Flags().UintVar(&opts.bits, flagBits, 0, "filter size in bits, a multiple of 8; defaults to bloom.bits")
	cmd.Flags().UintVar(&opts.hashes, flagHashes, 0, "bit positions per value; defaults to bloom.hashes")
	cmd.Flags().UintVar(&opts.expected, flagExpected, 0, "size the filter for this many values instead of --bits/--hashes")
	cmd.Flags().Float64Var(&opts.fp, flagFP, defaultFP, "target false-positive rate used with --expected")
	cmd.Flags().StringVar(&opts.seed, flagSeed, "", "lookup3 seed (decimal or 0x hex); defaults to bloom.seed")
	cmd.Flags().StringSliceVar(&opts.add, flagAdd, nil, "values to add")
	cmd.Flags().StringVar(&opts.addFile, flagAddFile, "", "file with one value per line to add ('-' for stdin)")
	cmd.Flags().StringSliceVar(&opts.query, flagQuery, nil, "values to query")
	cmd.Flags().StringVar(&opts.load, flagLoad, "", "load a filter saved with --save")
	cmd.Flags().StringVar(&opts.save, flagSave, "", "write the filter to this path after adding")
	cmd.Flags().IntVar(&opts.randomWords, flagRandomWords, 0, "add this many random words and verify none is lost")
	cmd.Flags().StringVar(&opts.format, flagFormat, formatText, flagFormatUsage)

	return cmd
}

func runBloom(ctx context.Context, cmd *cobra.Command, s *session, opts *bloomOptions) error {
	err := validateFormat(opts.format)
	if err != nil {
		return err
	}

	filter, err := buildFilter(s.cfg, opts)
	if err != nil {
		return err
	}

	err = checkFilterSize(s.cfg, filter)
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "filter ready",
		slog.Uint64("bits", uint64(filter.BitCount())),
		slog.Uint64("hashes", uint64(filter.HashCount())),
	)

	values, err := collectBloomValues(cmd, opts)
	if err != nil {
		return err
	}

	for _, v := range values {
		filter.Add(v)
		s.metrics.RecordBloom(ctx, observability.BloomOpAdd, outcomeOK)
	}

	err = addRandomWords(ctx, s, filter, opts.randomWords)
	if err != nil {
		return err
	}

	report := bloomReport{
		Bits:        filter.BitCount(),
		Hashes:      filter.HashCount(),
		Seed:        hex32(filter.Seed()),
		Size:        humanize.IBytes(uint64(units.BytesForBits(filter.BitCount()))),
		RandomWords: opts.randomWords,
		Queries:     make([]bloomQuery, 0, len(opts.query)),
	}

	for _, q := range opts.query {
		membership := filter.MightContain([]byte(q))
		s.metrics.RecordBloom(ctx, observability.BloomOpQuery, membership.String())
		report.Queries = append(report.Queries, bloomQuery{Value: q, Membership: membership.String()})
	}

	report.EstimatedCount = filter.EstimatedCount()
	report.FillRatio = filter.FillRatio()

	if opts.save != "" {
		err = saveFilter(filter, opts.save)
		if err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "filter saved", slog.String("path", opts.save))
	}

	out := cmd.OutOrStdout()
	if opts.format != formatText {
		return writeStructured(out, opts.format, report)
	}

	_, err = fmt.Fprintf(out, "bits %s (%s), hashes %d, seed %s\nvalues ~%s, fill %.2f%%\n",
		humanize.Comma(safeconv.SafeInt64(uint64(report.Bits))), report.Size, report.Hashes, report.Seed,
		humanize.Comma(safeconv.SafeInt64(uint64(report.EstimatedCount))), report.FillRatio*100)
	if err != nil {
		return err
	}

	if len(report.Queries) == 0 {
		return nil
	}

	tbl := newTable(table.Row{"Value", "Membership"})
	for _, q := range report.Queries {
		tbl.AppendRow(table.Row{q.Value, q.Membership})
	}

	_, err = fmt.Fprintln(out, tbl.Render())

	return err
}

func buildFilter(cfg *config.Config, opts *bloomOptions) (*bloom.Filter, error) {
	if opts.load != "" {
		data, err := os.ReadFile(opts.load)
		if err != nil {
			return nil, fmt.Errorf("load filter: %w", err)
		}

		filter := &bloom.Filter{}

		err = filter.UnmarshalBinary(data)
		if err != nil {
			return nil, fmt.Errorf("load filter %s: %w", opts.load, err)
		}

		return filter, nil
	}

	seed := cfg.Bloom.Seed

	if opts.seed != "" {
		parsed, err := safeconv.ParseUint32(opts.seed)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flagSeed, err)
		}

		seed = parsed
	}

	if opts.expected > 0 {
		return bloom.NewWithEstimates(opts.expected, opts.fp, bloom.WithSeed(seed))
	}

	bits, hashes := cfg.Bloom.Bits, cfg.Bloom.Hashes

	if opts.bits != 0 {
		bits = opts.bits
	}

	if opts.hashes != 0 {
		hashes = opts.hashes
	}

	return bloom.New(bits, hashes, bloom.WithSeed(seed))
}

// checkFilterSize enforces bloom.max_size on flag-sized and loaded filters.
func checkFilterSize(cfg *config.Config, filter *bloom.Filter) error {
	maxBytes, err := humanize.ParseBytes(cfg.Bloom.MaxSize)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", config.ErrInvalidMaxSize, cfg.Bloom.MaxSize, err)
	}

	size := uint64(units.BytesForBits(filter.BitCount()))
	if size > maxBytes {
		return fmt.Errorf("%w: %s > %s", config.ErrBloomTooLarge, humanize.IBytes(size), cfg.Bloom.MaxSize)
	}

	return nil
}

func collectBloomValues(cmd *cobra.Command, opts *bloomOptions) ([][]byte, error) {
	values := make([][]byte, 0, len(opts.add))
	for _, v := range opts.add {
		values = append(values, []byte(v))
	}

	if opts.addFile == "" {
		return values, nil
	}

	data, err := readInputFile(cmd.InOrStdin(), opts.addFile)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		values = append(values, bytes.Clone(line))
	}

	err = scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.addFile, err)
	}

	return values, nil
}

// addRandomWords adds n random printable words and fails if any of them is
// then reported absent.
func addRandomWords(ctx context.Context, s *session, filter *bloom.Filter, n int) error {
	if n <= 0 {
		return nil
	}

	seed := uint64(filter.Seed())
	rng := rand.New(rand.NewPCG(seed, seed^uint64(n)))

	words := make([][]byte, n)
	for i := range words {
		word := make([]byte, randomWordLen)
		for j := range word {
			word[j] = byte(randomWordLow + rng.IntN(randomWordHigh-randomWordLow))
		}

		words[i] = word
		s.logger.DebugContext(ctx, "generated word", slog.String("word", string(word)))
	}

	filter.AddBulk(words)

	lost := 0

	for i, present := range filter.TestBulk(words) {
		if !present {
			lost++

			s.logger.ErrorContext(ctx, "added word reported absent", slog.String("word", string(words[i])))
		}
	}

	if lost > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFalseNegative, lost, n)
	}

	return nil
}

func saveFilter(filter *bloom.Filter, path string) error {
	data, err := filter.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode filter: %w", err)
	}

	err = os.WriteFile(path, data, savePerm)
	if err != nil {
		return fmt.Errorf("save filter: %w", err)
	}

	return nil
}
