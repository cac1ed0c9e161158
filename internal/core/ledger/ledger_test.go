package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	ledgerconfig "github.com/xrpl-wasm/contracts/internal/config/ledger"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/storage/badger"
)

var (
	alice  = framework.AccountID{0x0a}
	bob    = framework.AccountID{0x0b}
	carol  = framework.AccountID{0x0c}
	issuer = framework.AccountID{0x1e}
	usd    = framework.ISOCurrency("USD")
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	store, err := badger.New(&ledgerconfig.LedgerOptions{Backend: ledgerconfig.BackendMemory}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store, nil)
}

func testMPTID(seq byte, owner framework.AccountID) framework.MPTID {
	var id framework.MPTID
	id[3] = seq
	copy(id[4:], owner[:])
	return id
}

func usdAmount(value int64) framework.Amount {
	return framework.IOU(value, 0, usd, issuer)
}

func requireResult(t *testing.T, err error, want Result) {
	t.Helper()
	require.Error(t, err)
	var le *Error
	require.True(t, errors.As(err, &le), "期望 *ledger.Error，实际 %T", err)
	assert.Equal(t, want, le.Result, le.Error())
}

func balanceOf(t *testing.T, l *Ledger, id framework.AccountID, asset Asset) decimal.Decimal {
	t.Helper()
	b, err := l.Balance(context.Background(), id, asset)
	require.NoError(t, err)
	return b
}

func TestTransferXRP(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	_, err := l.Fund(ctx, alice, framework.XRP(1_000))
	require.NoError(t, err)
	_, err = l.Fund(ctx, bob, framework.XRP(10))
	require.NoError(t, err)

	before, err := l.Sequence(ctx)
	require.NoError(t, err)

	seq, err := l.Transfer(ctx, alice, framework.XRP(100), bob)
	require.NoError(t, err)
	assert.Equal(t, before+1, seq)

	assert.True(t, balanceOf(t, l, alice, XRPAsset()).Equal(decimal.NewFromInt(900)))
	assert.True(t, balanceOf(t, l, bob, XRPAsset()).Equal(decimal.NewFromInt(110)))

	info, err := l.Account(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), info.Sequence)
	assert.Equal(t, int64(900), info.Drops)
}

func TestTransferRejections(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	_, err := l.Fund(ctx, alice, framework.XRP(50))
	require.NoError(t, err)
	_, err = l.Fund(ctx, bob, framework.XRP(1))
	require.NoError(t, err)

	tests := []struct {
		name   string
		from   framework.AccountID
		amount framework.Amount
		to     framework.AccountID
		want   Result
	}{
		{"余额不足", alice, framework.XRP(51), bob, TecUNFUNDED_PAYMENT},
		{"目标不存在", alice, framework.XRP(1), carol, TecNO_DST},
		{"源账户不存在", carol, framework.XRP(1), alice, TerNO_ACCOUNT},
		{"零金额", alice, framework.XRP(0), bob, TemBAD_AMOUNT},
		{"负金额", alice, framework.XRP(-1), bob, TemBAD_AMOUNT},
		{"未初始化金额", alice, framework.Amount{}, bob, TemBAD_AMOUNT},
		{"自己转给自己", alice, framework.XRP(1), alice, TemDST_IS_SRC},
		{"XRP 货币码", alice, framework.IOU(1, 0, framework.Currency{}, issuer), bob, TemBAD_CURRENCY},
		{"发行方为空", alice, framework.IOU(1, 0, usd, framework.AccountID{}), bob, TemBAD_ISSUER},
		{"没有信任线", alice, usdAmount(1), bob, TecNO_LINE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := l.Transfer(ctx, tt.from, tt.amount, tt.to)
			assert.Zero(t, seq)
			requireResult(t, err, tt.want)
			assert.Less(t, int32(ResultOf(err)), int32(0))
		})
	}

	// 失败不改变状态
	assert.True(t, balanceOf(t, l, alice, XRPAsset()).Equal(decimal.NewFromInt(50)))
	info, err := l.Account(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), info.Sequence)
}

func TestTransferIOU(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	asset := IOUAsset(usd, issuer)

	for _, id := range []framework.AccountID{alice, bob, issuer} {
		_, err := l.Fund(ctx, id, framework.XRP(1_000))
		require.NoError(t, err)
	}
	_, err := l.SetTrustLine(ctx, alice, usd, issuer, decimal.NewFromInt(1_000))
	require.NoError(t, err)
	_, err = l.SetTrustLine(ctx, bob, usd, issuer, decimal.NewFromInt(100))
	require.NoError(t, err)

	// 发行
	_, err = l.Transfer(ctx, issuer, usdAmount(500), alice)
	require.NoError(t, err)
	assert.True(t, balanceOf(t, l, alice, asset).Equal(decimal.NewFromInt(500)))

	// 持有方之间
	_, err = l.Transfer(ctx, alice, framework.IOU(255, -1, usd, issuer), bob)
	require.NoError(t, err)
	assert.Equal(t, "474.5", balanceOf(t, l, alice, asset).String())
	assert.Equal(t, "25.5", balanceOf(t, l, bob, asset).String())

	// 超出目标额度，整体回滚
	_, err = l.Transfer(ctx, alice, usdAmount(80), bob)
	requireResult(t, err, TecPATH_DRY)
	assert.Equal(t, "474.5", balanceOf(t, l, alice, asset).String())

	// 余额不足
	_, err = l.Transfer(ctx, bob, usdAmount(26), alice)
	requireResult(t, err, TecUNFUNDED_PAYMENT)

	// 赎回
	_, err = l.Transfer(ctx, bob, framework.IOU(55, -1, usd, issuer), issuer)
	require.NoError(t, err)
	assert.Equal(t, "20", balanceOf(t, l, bob, asset).String())

	info, err := l.Account(ctx, alice)
	require.NoError(t, err)
	require.Len(t, info.TrustLines, 1)
	assert.Equal(t, "USD", info.TrustLines[0].Currency)
	assert.Equal(t, "474.5", info.TrustLines[0].Balance.String())
	assert.Equal(t, "1000", info.TrustLines[0].Limit.String())
}

func TestTransferMPT(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	id := testMPTID(1, issuer)

	for _, acct := range []framework.AccountID{alice, bob, issuer} {
		_, err := l.Fund(ctx, acct, framework.XRP(1_000))
		require.NoError(t, err)
	}

	_, err := l.Transfer(ctx, issuer, framework.MPT(10, id), alice)
	requireResult(t, err, TecNO_AUTH)

	_, err = l.AuthorizeMPT(ctx, alice, id)
	require.NoError(t, err)
	_, err = l.AuthorizeMPT(ctx, bob, id)
	require.NoError(t, err)

	_, err = l.Transfer(ctx, issuer, framework.MPT(10, id), alice)
	require.NoError(t, err)
	_, err = l.Transfer(ctx, alice, framework.MPT(4, id), bob)
	require.NoError(t, err)
	_, err = l.Transfer(ctx, alice, framework.MPT(7, id), bob)
	requireResult(t, err, TecUNFUNDED_PAYMENT)

	assert.True(t, balanceOf(t, l, alice, MPTAsset(id)).Equal(decimal.NewFromInt(6)))
	assert.True(t, balanceOf(t, l, bob, MPTAsset(id)).Equal(decimal.NewFromInt(4)))

	info, err := l.Account(ctx, bob)
	require.NoError(t, err)
	require.Len(t, info.MPTokens, 1)
	assert.Equal(t, id.String(), info.MPTokens[0].MPTID)
	assert.Equal(t, int64(4), info.MPTokens[0].Amount)
}

func TestFund(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	seq, err := l.Fund(ctx, alice, usdAmount(30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	info, err := l.Account(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.CreatedAt)
	assert.Equal(t, int64(0), info.Drops)
	require.Len(t, info.TrustLines, 1)
	assert.Equal(t, "30", info.TrustLines[0].Limit.String())

	_, err = l.Fund(ctx, issuer, usdAmount(1))
	requireResult(t, err, TemBAD_ISSUER)

	_, err = l.Fund(ctx, alice, framework.XRP(framework.MaxNativeDrops))
	require.NoError(t, err)
	_, err = l.Fund(ctx, alice, framework.XRP(1))
	requireResult(t, err, TemBAD_AMOUNT)
}

func TestSetTrustLineValidation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	_, err := l.SetTrustLine(ctx, alice, usd, issuer, decimal.NewFromInt(1))
	requireResult(t, err, TerNO_ACCOUNT)

	_, err = l.SetTrustLine(ctx, alice, framework.Currency{}, issuer, decimal.NewFromInt(1))
	requireResult(t, err, TemBAD_CURRENCY)

	_, err = l.SetTrustLine(ctx, alice, usd, alice, decimal.NewFromInt(1))
	requireResult(t, err, TemDST_IS_SRC)

	_, err = l.SetTrustLine(ctx, alice, usd, issuer, decimal.NewFromInt(-1))
	requireResult(t, err, TemBAD_LIMIT)
}

func TestAccountAndBalanceNotFound(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	_, err := l.Account(ctx, alice)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = l.Balance(ctx, alice, XRPAsset())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestEnsureGenesis(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	funded, err := l.EnsureGenesis(ctx, alice, 500)
	require.NoError(t, err)
	assert.True(t, funded)

	funded, err = l.EnsureGenesis(ctx, alice, 500)
	require.NoError(t, err)
	assert.False(t, funded)

	assert.True(t, balanceOf(t, l, alice, XRPAsset()).Equal(decimal.NewFromInt(500)))
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, TesSUCCESS, ResultOf(nil))
	assert.Equal(t, TefINTERNAL, ResultOf(errors.New("磁盘错误")))
	assert.Equal(t, TecNO_DST, ResultOf(newError(TecNO_DST, "x")))
	assert.Equal(t, "tecNO_LINE", TecNO_LINE.String())
	assert.Equal(t, "-1", Result(-1).String())
}
