package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bce-toolkit/bce/internal/balance"
	"github.com/bce-toolkit/bce/internal/store"
	"github.com/bce-toolkit/bce/internal/testutil"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestEngine(t *testing.T, options ...Option) *Engine {
	t.Helper()
	e, err := New(balance.DefaultOptions(), append([]Option{quiet()}, options...)...)
	require.NoError(t, err)
	return e
}

func newRecorder(t *testing.T, tokens ...string) (*store.Store, *store.Recorder) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, store.NewRecorder(s, testutil.NewFixedTokenGenerator(tokens...))
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(balance.Options{AutoCorrect: true, SymbolHeader: ""})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestBalance(t *testing.T) {
	e := newTestEngine(t)
	out, err := e.Balance(context.Background(), "CaCO3(s) → CaO(s) + CO2(g)")
	require.NoError(t, err)

	assert.True(t, out.OK())
	assert.Equal(t, "CaCO3(s)=CaO(s)+CO2(g)", out.Expression)
	assert.Equal(t, "CaCO3(s)=CaO(s)+CO2(g)", out.Balanced)
	assert.Equal(t, "left_to_right", out.Direction)
	assert.False(t, out.Cached)
	assert.Empty(t, out.RunID)
}

func TestBalanceFailures(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		kind  FailureKind
		code  string
		pos   int
		subst string
	}{
		{"parse", "H2O+N#=C", FailureParse, "UNEXPECTED_CHARACTER", 5, "#"},
		{"elimination", "He=Ne", FailureBalance, "ALL_SIDES_ELIMINATED", -1, ""},
		{"multiple answers", "H2+O2+H2O2=H2O", FailureBalance, "MULTIPLE_INDEPENDENT_ANSWERS", -1, ""},
	}
	e := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := e.Balance(context.Background(), tt.expr)
			require.NoError(t, err)
			require.False(t, out.OK())

			assert.Equal(t, tt.kind, out.Failure.Kind)
			assert.Equal(t, tt.code, out.Failure.Code)
			assert.Equal(t, tt.pos, out.Failure.Pos)
			assert.NotEmpty(t, out.Failure.MessageKey)
			assert.Empty(t, out.Balanced)
			if tt.subst != "" {
				assert.Equal(t, tt.subst, out.Failure.Details["$1"])
			}
		})
	}
}

func TestBalanceWithOptions(t *testing.T) {
	e := newTestEngine(t)
	strict := balance.Options{AutoCorrect: false, SymbolHeader: "X"}

	out, err := e.BalanceWith(context.Background(), "H2+H2O=O2", strict)
	require.NoError(t, err)
	require.NotNil(t, out.Failure)
	assert.Equal(t, "WRONG_SIDE_MOLECULE", out.Failure.Code)
	assert.Equal(t, "H2", out.Failure.Details["$1"])

	_, err = e.BalanceWith(context.Background(), "H2+O2=H2O", balance.Options{SymbolHeader: "X1"})
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestBalanceRecordsAndCaches(t *testing.T) {
	s, rec := newRecorder(t, "run-1")
	e := newTestEngine(t, WithRecorder(rec))
	ctx := context.Background()
	assert.Equal(t, "run-1", e.RunID())

	first, err := e.Balance(ctx, "H2+O2=H2O")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, int64(1), first.Seq)

	second, err := e.Balance(ctx, "H2 + O2 = H2O")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Balanced, second.Balanced)
	assert.Equal(t, first.Direction, second.Direction)
	assert.Equal(t, int64(2), second.Seq)

	entries, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entries[0].ID, entries[1].ID)
}

func TestCachedFailureKeepsPositionAndDetails(t *testing.T) {
	_, rec := newRecorder(t, "run-1")
	e := newTestEngine(t, WithRecorder(rec))
	ctx := context.Background()

	fresh, err := e.Balance(ctx, "H2O+N#=C")
	require.NoError(t, err)
	cached, err := e.Balance(ctx, "H2O+N#=C")
	require.NoError(t, err)

	require.True(t, cached.Cached)
	assert.Equal(t, fresh.Failure, cached.Failure)
}

func TestCachedBalanceFailure(t *testing.T) {
	_, rec := newRecorder(t, "run-1")
	e := newTestEngine(t, WithRecorder(rec))
	ctx := context.Background()
	strict := balance.Options{AutoCorrect: false, SymbolHeader: "X"}

	fresh, err := e.BalanceWith(ctx, "H2+O2+Ne=H2O", strict)
	require.NoError(t, err)
	cached, err := e.BalanceWith(ctx, "H2+O2+Ne=H2O", strict)
	require.NoError(t, err)

	require.True(t, cached.Cached)
	assert.Equal(t, fresh.Failure, cached.Failure)
	assert.Equal(t, FailureBalance, cached.Failure.Kind)
}

func TestCheck(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	out, err := e.Check(ctx, "2H2+O2=2H2O")
	require.NoError(t, err)
	assert.True(t, out.Balanced)
	assert.Nil(t, out.Failure)

	out, err = e.Check(ctx, "H2+O2=H2O")
	require.NoError(t, err)
	assert.False(t, out.Balanced)

	out, err = e.Check(ctx, "H2O")
	require.NoError(t, err)
	require.NotNil(t, out.Failure)
	assert.Equal(t, "ONLY_ONE_MOLECULE", out.Failure.Code)
}

func TestFailureError(t *testing.T) {
	f := &Failure{Kind: FailureParse, Code: "NO_CONTENT", Pos: 2}
	assert.Equal(t, "parse: NO_CONTENT at 2", f.Error())

	f = &Failure{Kind: FailureBalance, Code: "ALL_SIDES_ELIMINATED", Pos: -1}
	assert.Equal(t, "balance: ALL_SIDES_ELIMINATED", f.Error())
}
