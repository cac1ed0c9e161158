package key

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
)

func TestFromPrivateKeyOne(t *testing.T) {
	priv := make([]byte, 32)
	priv[31] = 1

	kp, err := FromPrivateKey(priv)
	require.NoError(t, err)
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", kp.PublicKeyHex())
	assert.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(kp.AccountID[:]))

	decoded, err := address.DecodeAccountID(kp.Address())
	require.NoError(t, err)
	assert.Equal(t, kp.AccountID, decoded)
}

func TestFromPrivateKeyInvalid(t *testing.T) {
	_, err := FromPrivateKey(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = FromPrivateKey(make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestGenerate(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)

	assert.Len(t, a.PrivateKey, 32)
	assert.Len(t, a.PublicKey, 33)
	assert.NotEqual(t, a.AccountID, b.AccountID)
	assert.True(t, strings.HasPrefix(a.Address(), "r"))

	restored, err := FromPrivateKey(a.PrivateKey)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.PublicKey, restored.PublicKey))
}

func TestMnemonicDerivationIsDeterministic(t *testing.T) {
	mnemonic, err := NewMnemonic(Mnemonic12Words)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 12)

	a, err := FromMnemonic(mnemonic, "")
	require.NoError(t, err)
	b, err := FromMnemonic(mnemonic, "")
	require.NoError(t, err)
	c, err := FromMnemonic(mnemonic, "extra")
	require.NoError(t, err)

	assert.Equal(t, a.AccountID, b.AccountID)
	assert.NotEqual(t, a.AccountID, c.AccountID)
	assert.Equal(t, mnemonic, a.Mnemonic)

	_, err = FromMnemonic("not a valid mnemonic", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}
