package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lookup3/pkg/alg/lookup3"
)

func TestRunVectors_ReportsMismatch(t *testing.T) {
	t.Parallel()

	cmd := NewVectorsCommand()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	vectors := []lookup3.Vector{
		{Name: "good", Input: []byte{}, Want: 0xdeadbeef},
		{Name: "bad", Input: []byte("x"), Want: 1},
	}

	err := withSession(cmd, func(ctx context.Context, s *session) error {
		return runVectors(ctx, cmd, s, vectors)
	})

	require.ErrorIs(t, err, ErrVectorMismatch)
	assert.Contains(t, err.Error(), "4 of 8")
	assert.Contains(t, out.String(), "FAIL")
	assert.Contains(t, out.String(), "PASS")
}
