package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqlab/comprehend/internal/value"
	"github.com/seqlab/comprehend/seq"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedNumbers(t *testing.T, s *Store, ns ...int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Exec(ctx, `CREATE TABLE IF NOT EXISTS numbers (n INTEGER NOT NULL)`))
	for _, n := range ns {
		require.NoError(t, s.Exec(ctx, `INSERT INTO numbers (n) VALUES (?)`, n))
	}
}

func TestTable_SingleColumnYieldsScalars(t *testing.T) {
	s := openTestStore(t)
	seedNumbers(t, s, 3, 1, 2)

	got, err := seq.Collect(s.Table(context.Background(), "numbers"))
	require.NoError(t, err)
	// Insertion order, not value order.
	assert.Equal(t, []value.Value{value.Int(3), value.Int(1), value.Int(2)}, got)
}

func TestTable_MultiColumnYieldsTuples(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Exec(ctx, `CREATE TABLE readings (sensor TEXT NOT NULL, temp REAL NOT NULL)`))
	require.NoError(t, s.Exec(ctx, `INSERT INTO readings VALUES ('a', 20.5), ('b', 21.0)`))

	got, err := seq.Collect(s.Table(ctx, "readings"))
	require.NoError(t, err)
	assert.Equal(t, []value.Value{
		value.Tuple{value.Str("a"), value.Float(20.5)},
		value.Tuple{value.Str("b"), value.Float(21)},
	}, got)
}

func TestTable_ColumnProjection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Exec(ctx, `CREATE TABLE readings (sensor TEXT NOT NULL, temp REAL NOT NULL)`))
	require.NoError(t, s.Exec(ctx, `INSERT INTO readings VALUES ('a', 20.5)`))

	got, err := seq.Collect(s.Table(ctx, "readings", "sensor"))
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Str("a")}, got)
}

func TestTable_ReconsumptionObservesCurrentRows(t *testing.T) {
	s := openTestStore(t)
	seedNumbers(t, s, 1)
	tbl := s.Table(context.Background(), "numbers")

	got, err := seq.Collect(tbl)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1)}, got)

	seedNumbers(t, s, 2)
	got, err = seq.Collect(tbl)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, got)
}

func TestTable_LazyUntilConsumed(t *testing.T) {
	s := openTestStore(t)

	// Building the sequence for a missing table must not fail; the
	// error surfaces on consumption.
	tbl := s.Table(context.Background(), "missing")
	_, err := seq.Collect(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query table missing")
}

func TestTable_EarlyStopStopsScanning(t *testing.T) {
	s := openTestStore(t)
	seedNumbers(t, s, 1, 2, 3, 4, 5)

	got, err := seq.Collect(s.Table(context.Background(), "numbers").Take(2))
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2)}, got)
}

func TestTable_NullColumnFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Exec(ctx, `CREATE TABLE sparse (n INTEGER)`))
	require.NoError(t, s.Exec(ctx, `INSERT INTO sparse VALUES (1), (NULL)`))

	_, err := seq.Collect(s.Table(ctx, "sparse"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is NULL")
}

func TestTable_RejectsInvalidIdentifiers(t *testing.T) {
	s := openTestStore(t)

	_, err := seq.Collect(s.Table(context.Background(), "numbers; DROP TABLE x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")

	_, err = seq.Collect(s.Table(context.Background(), "numbers", `n" FROM x --`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid column name")
}

func TestDataset_WrapsTableAsStream(t *testing.T) {
	s := openTestStore(t)
	seedNumbers(t, s, 4, 9)

	ds, err := s.Dataset(context.Background(), "numbers")
	require.NoError(t, err)
	assert.Equal(t, "numbers", ds.Name)

	items, ok := value.Iterate(ds)
	require.True(t, ok)
	got, err := seq.Collect(items)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Int(4), value.Int(9)}, got)

	_, err = s.Dataset(context.Background(), "not valid")
	require.Error(t, err)
}
