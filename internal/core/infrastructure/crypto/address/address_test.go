package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

func mustAccount(t *testing.T, h string) framework.AccountID {
	t.Helper()
	raw, err := hex.DecodeString(h)
	require.NoError(t, err)
	id, err := framework.AccountIDFromBytes(raw)
	require.NoError(t, err)
	return id
}

func TestEncodeDecodeKnownAccounts(t *testing.T) {
	cases := []struct {
		name    string
		hex     string
		address string
	}{
		{"创世账户", "B5F762798A53D543A014CAF8B297CFF8F2F937E8", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"},
		{"全零账户", "0000000000000000000000000000000000000000", "rrrrrrrrrrrrrrrrrrrrrhoLvTp"},
		{"账户一", "0000000000000000000000000000000000000001", "rrrrrrrrrrrrrrrrrrrrBZbvji"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := mustAccount(t, tc.hex)
			assert.Equal(t, tc.address, EncodeAccountID(id))

			decoded, err := DecodeAccountID(tc.address)
			require.NoError(t, err)
			assert.Equal(t, id, decoded)
		})
	}
}

func TestDecodeAccountIDErrors(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    error
	}{
		{"空地址", "", ErrInvalidAddress},
		{"非 r 开头", "Cf1Kes6snEUeykiJJgrAtKPNPrAzPdPmSn", ErrInvalidAddress},
		{"太短", "rHb9CJAW", ErrInvalidAddressLength},
		{"校验和错误", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTi", ErrInvalidChecksum},
		{"非法字符", "rHb9CJAWyB4rj91VRWn96DkukG4bwdty0h", ErrInvalidAddress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAccountID(tc.address)
			assert.ErrorIs(t, err, tc.want)

			valid, err := ValidateAddress(tc.address)
			assert.False(t, valid)
			assert.Error(t, err)
		})
	}
}

func TestParseAccount(t *testing.T) {
	genesis := mustAccount(t, "B5F762798A53D543A014CAF8B297CFF8F2F937E8")

	for _, in := range []string{
		"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
		"B5F762798A53D543A014CAF8B297CFF8F2F937E8",
		"0xb5f762798a53d543a014caf8b297cff8f2f937e8",
		"  rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh ",
	} {
		got, err := ParseAccount(in)
		require.NoError(t, err, in)
		assert.Equal(t, genesis, got, in)
	}

	_, err := ParseAccount("B5F7")
	assert.ErrorIs(t, err, ErrInvalidAddressLength)

	_, err = ParseAccount("zz")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAccountIDFromPublicKey(t *testing.T) {
	// secp256k1 生成元 G 的压缩公钥（私钥为 1）
	pub, err := hex.DecodeString("0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")
	require.NoError(t, err)

	id, err := AccountIDFromPublicKey(pub)
	require.NoError(t, err)
	assert.Equal(t, mustAccount(t, "751E76E8199196D454941C45D1B3A323F1433BD6"), id)

	_, err = AccountIDFromPublicKey(pub[:32])
	assert.ErrorIs(t, err, ErrInvalidPublicKey)
}
