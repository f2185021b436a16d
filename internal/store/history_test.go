package store

import (
	"context"
	"testing"

	"github.com/bce-toolkit/bce/internal/balance"
)

func testResult(t *testing.T, expr, balanced string) Result {
	t.Helper()
	opts := balance.DefaultOptions()
	id, err := ResultID(expr, opts)
	if err != nil {
		t.Fatalf("ResultID() failed: %v", err)
	}
	return Result{
		ID:         id,
		Expression: expr,
		Options:    opts,
		Balanced:   balanced,
		Direction:  "left_to_right",
	}
}

func TestAppendEntry_StoresResult(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	if err := s.AppendEntry(ctx, "run-1", 1, r); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}

	got, ok, err := s.ReadResult(ctx, r.ID)
	if err != nil {
		t.Fatalf("ReadResult() failed: %v", err)
	}
	if !ok {
		t.Fatal("ReadResult() did not find stored result")
	}
	if got.Balanced != "2H2+O2=2H2O" {
		t.Errorf("Balanced = %q, want %q", got.Balanced, "2H2+O2=2H2O")
	}
	if got.Options != r.Options {
		t.Errorf("Options = %+v, want %+v", got.Options, r.Options)
	}
	if got.Failed() {
		t.Error("Failed() = true for a successful result")
	}
}

func TestAppendEntry_RepeatedResultStoredOnce(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	for i := 0; i < 2; i++ {
		if err := s.AppendEntry(ctx, "run-1", int64(i+1), r); err != nil {
			t.Fatalf("AppendEntry() #%d failed: %v", i+1, err)
		}
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if n != 1 {
		t.Errorf("results count = %d, want 1", n)
	}
}

func TestAppendEntry_ErrorDetails(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testResult(t, "H2O=H2O2-H2O2", "")
	r.ErrorCode = "WRONG_SIDE_MOLECULE"
	r.ErrorDetails = map[string]string{"$1": "H2O2"}
	r.Direction = ""
	if err := s.AppendEntry(ctx, "run-1", 1, r); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}

	got, _, err := s.ReadResult(ctx, r.ID)
	if err != nil {
		t.Fatalf("ReadResult() failed: %v", err)
	}
	if !got.Failed() {
		t.Error("Failed() = false for an error result")
	}
	if got.ErrorDetails["$1"] != "H2O2" {
		t.Errorf("ErrorDetails = %v, want $1=H2O2", got.ErrorDetails)
	}
}

func TestReadResult_Missing(t *testing.T) {
	s := createTestStore(t)

	_, ok, err := s.ReadResult(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ReadResult() failed: %v", err)
	}
	if ok {
		t.Error("ReadResult() found a result that was never written")
	}
}

func TestAppendEntry_ReadRunOrdersBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	water := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	methane := testResult(t, "CH4+O2=CO2+H2O", "CH4+2O2=CO2+2H2O")

	// Written out of order on purpose.
	if err := s.AppendEntry(ctx, "run-1", 1, methane); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}
	if err := s.AppendEntry(ctx, "run-1", 0, water); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}

	entries, err := s.ReadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Seq != 0 || entries[0].Balanced != "2H2+O2=2H2O" {
		t.Errorf("entries[0] = %+v, want water at seq 0", entries[0])
	}
	if entries[1].Seq != 1 || entries[1].Balanced != "CH4+2O2=CO2+2H2O" {
		t.Errorf("entries[1] = %+v, want methane at seq 1", entries[1])
	}
}

func TestAppendEntry_SharesResultAcrossRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	if err := s.AppendEntry(ctx, "run-1", 0, r); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}
	if err := s.AppendEntry(ctx, "run-2", 0, r); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if n != 1 {
		t.Errorf("results count = %d, want 1", n)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0] != "run-2" || runs[1] != "run-1" {
		t.Errorf("ListRuns() = %v, want [run-2 run-1]", runs)
	}
}

func TestAppendEntry_DuplicateSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	r := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	if err := s.AppendEntry(ctx, "run-1", 0, r); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}
	if err := s.AppendEntry(ctx, "run-1", 0, r); err == nil {
		t.Error("expected error for duplicate (run, seq), got nil")
	}
}

func TestReadRun_Unknown(t *testing.T) {
	s := createTestStore(t)

	entries, err := s.ReadRun(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ReadRun() failed: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("ReadRun() = %#v, want empty non-nil slice", entries)
	}
}

func TestReadRecent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	water := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	methane := testResult(t, "CH4+O2=CO2+H2O", "CH4+2O2=CO2+2H2O")
	if err := s.AppendEntry(ctx, "run-a", 0, water); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}
	if err := s.AppendEntry(ctx, "run-b", 0, methane); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}
	if err := s.AppendEntry(ctx, "run-b", 1, water); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}

	entries, err := s.ReadRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ReadRecent() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if e.RunID != "run-b" || e.Seq != int64(i) {
			t.Errorf("entries[%d] = (%s, %d), want (run-b, %d)", i, e.RunID, e.Seq, i)
		}
	}

	none, err := s.ReadRecent(ctx, 0)
	if err != nil {
		t.Fatalf("ReadRecent(0) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ReadRecent(0) returned %d entries", len(none))
	}
}

func TestLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.LastSeq(ctx, "run-1")
	if err != nil {
		t.Fatalf("LastSeq() failed: %v", err)
	}
	if seq != 0 {
		t.Errorf("LastSeq() of empty run = %d, want 0", seq)
	}

	r := testResult(t, "H2+O2=H2O", "2H2+O2=2H2O")
	for _, n := range []int64{1, 2, 3} {
		if err := s.AppendEntry(ctx, "run-1", n, r); err != nil {
			t.Fatalf("AppendEntry() failed: %v", err)
		}
	}
	if err := s.AppendEntry(ctx, "run-2", 7, r); err != nil {
		t.Fatalf("AppendEntry() failed: %v", err)
	}

	seq, err = s.LastSeq(ctx, "run-1")
	if err != nil {
		t.Fatalf("LastSeq() failed: %v", err)
	}
	if seq != 3 {
		t.Errorf("LastSeq() = %d, want 3", seq)
	}
}
