package safeconv_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lookup3/pkg/safeconv"
)

func TestParseUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr error
	}{
		{name: "decimal", input: "42", want: 42},
		{name: "hex", input: "0xdeadbeef", want: 0xdeadbeef},
		{name: "upper_hex", input: "0XCAFEBABE", want: 0xcafebabe},
		{name: "underscores", input: "0x9e37_79b9", want: 0x9e3779b9},
		{name: "binary", input: "0b101", want: 5},
		{name: "surrounding_space", input: " 7 ", want: 7},
		{name: "max", input: "4294967295", want: math.MaxUint32},
		{name: "overflow", input: "4294967296", wantErr: safeconv.ErrOutOfRange},
		{name: "negative", input: "-1", wantErr: strconv.ErrSyntax},
		{name: "garbage", input: "seed", wantErr: strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := safeconv.ParseUint32(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWords(t *testing.T) {
	t.Parallel()

	words, err := safeconv.ParseWords([]string{"0xdeadbeef", "1", "0x0"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xdeadbeef, 1, 0}, words)

	empty, err := safeconv.ParseWords(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = safeconv.ParseWords([]string{"1", "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word 1")
}

func TestMustIntToUint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(0), safeconv.MustIntToUint(0))
	assert.Equal(t, uint(safeconv.MaxInt), safeconv.MustIntToUint(safeconv.MaxInt))
	assert.PanicsWithValue(t, "safeconv: negative int to uint conversion", func() {
		safeconv.MustIntToUint(-1)
	})
}

func TestSafeInt64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(42), safeconv.SafeInt64(42))
	assert.Equal(t, int64(math.MaxInt64), safeconv.SafeInt64(math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), safeconv.SafeInt64(math.MaxUint64))
}
