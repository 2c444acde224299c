package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
)

// maxTableBits is the largest n for which 1<<n fits in a uint32.
const maxTableBits = 31

// ErrTableBits is returned when the size argument is outside [0, 31].
var ErrTableBits = errors.New("table bits must be within [0, 31]")

// NewSizeCommand creates the size subcommand.
func NewSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "size <bits>",
		Short: "Print the table size and mask for a 2^bits hash table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(_ context.Context, _ *session) error {
				n, err := strconv.ParseUint(args[0], 10, 8)
				if err != nil || n > maxTableBits {
					return fmt.Errorf("%w: %q", ErrTableBits, args[0])
				}

				bits := uint8(n)

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "size %s (%s)\nmask %s\n",
					humanize.Comma(int64(lookup3.HashSize(bits))),
					hex32(lookup3.HashSize(bits)),
					hex32(lookup3.HashMask(bits)),
				)

				return err
			})
		},
	}
}
