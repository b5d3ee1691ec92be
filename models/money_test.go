package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMoneyRendersHalfUpToTwoPlaces(t *testing.T) {
	cases := []struct{ in, want string }{
		{"150", "150.00"},
		{"79.9", "79.90"},
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"0.125", "0.13"},
		{"-10.005", "-10.01"},
	}
	for _, tc := range cases {
		m, err := NewMoneyFromString(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, m.String(), "input %s", tc.in)
	}
}

func TestMoneyRejectsMalformedAmounts(t *testing.T) {
	for _, bad := range []string{"", "abc", "10.0.0", "$50"} {
		_, err := NewMoneyFromString(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, err := NewMoneyFromString("149.991")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `"149.99"`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal([]byte(`"873.25"`), &back))
	require.Equal(t, "873.25", back.String())

	// Bare numeric literals are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`42.5`), &back))
	require.Equal(t, "42.50", back.String())
}

func TestMoneyBSONRoundTrip(t *testing.T) {
	type doc struct {
		Amount Money `bson:"amount"`
	}

	in, err := NewMoneyFromString("149.991")
	require.NoError(t, err)

	raw, err := bson.Marshal(doc{Amount: in})
	require.NoError(t, err)

	var out doc
	require.NoError(t, bson.Unmarshal(raw, &out))
	// Full precision survives storage; rounding is display-only.
	require.True(t, out.Amount.Equal(in))
	require.Equal(t, "149.99", out.Amount.String())
}

func TestMoneyMulIntKeepsPrecision(t *testing.T) {
	rate, err := NewMoneyFromString("33.33")
	require.NoError(t, err)

	total := rate.MulInt(3)
	want, err := NewMoneyFromString("99.99")
	require.NoError(t, err)
	require.True(t, total.Equal(want))
}
