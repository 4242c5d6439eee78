// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lswap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	testCases := []struct {
		input   string
		wantErr string
	}{
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", ""},
		{"7567d83b7b8d80addcb281a71d54fc7b3364ffed", ""},
		{"0X7567D83B7B8D80ADDCB281A71D54FC7B3364FFED", ""},
		{"1x7567d83b7b8d80addcb281a71d54fc7b3364ffed", "invalid prefix"},
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ff", "invalid length"},
		{"", "invalid length"},
		{"0x7567d83b7b8d80addcb281a71d54fc7b3364ffzz", "encoding/hex: invalid byte: U+007A 'z'"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			addr, err := ParseAddress(tc.input)
			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("owner"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0x01"`), &decoded))
	assert.True(t, Address{}.IsZero())
	assert.False(t, addr.IsZero())
}
