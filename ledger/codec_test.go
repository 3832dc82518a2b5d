package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecordsWireFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	raw, err := EncodeRecords([]TradeRecord{
		{ID: 1704164645678, Decision: Win, TakeProfit: 50, StopLoss: 20, CreatedAt: ts},
		{ID: 1704164645679, Decision: Loss, TakeProfit: 12.5, StopLoss: 7.25, CreatedAt: ts},
	})
	require.NoError(t, err)

	want := `[{"id":1704164645678,"decision":"Yes","tp":50,"sl":20,"timestamp":1704164645678},` +
		`{"id":1704164645679,"decision":"No","tp":12.5,"sl":7.25,"timestamp":1704164645678}]`
	assert.JSONEq(t, want, raw)
}

func TestEncodeRecordsEmpty(t *testing.T) {
	t.Parallel()

	raw, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	recs, err := DecodeRecords(`[{"id":5,"decision":"No","tp":1,"sl":2.5,"timestamp":1700000000000}]`)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, int64(5), r.ID)
	assert.Equal(t, Loss, r.Decision)
	assert.Equal(t, -2.5, r.Result())
	assert.Equal(t, int64(1700000000000), r.CreatedAt.UnixMilli())
}

func TestDecodeRecordsRejects(t *testing.T) {
	t.Parallel()

	bad := []string{
		`not json`,
		`{"id":1}`,
		`[{"id":1,"decision":true,"tp":1,"sl":1,"timestamp":1}]`,
		`[{"id":1,"decision":"yes","tp":1,"sl":1,"timestamp":1}]`,
		`[{"id":"1","decision":"Yes","tp":1,"sl":1,"timestamp":1}]`,
	}
	for _, in := range bad {
		_, err := DecodeRecords(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCapitalCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{10000, "10000"},
		{1234.5, "1234.5"},
		{0, "0"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := EncodeCapital(tt.in)
			assert.Equal(t, tt.want, s)

			v, err := DecodeCapital(s)
			require.NoError(t, err)
			assert.Equal(t, tt.in, v)
		})
	}

	v, err := DecodeCapital(" 250 ")
	require.NoError(t, err)
	assert.Equal(t, 250.0, v)

	_, err = DecodeCapital("abc")
	assert.Error(t, err)
	_, err = DecodeCapital("Inf")
	assert.Error(t, err)
}
