// Package ledger 开发宿主的进程内账本
//
// 💰 **账本转账服务 (Ledger Transfer Service)**
//
// 替代真实 XRPL 账本承接合约发起的转账：
// - 账户根：XRP 余额（drops）与账户序号
// - 信任线：(持有方, 货币, 发行方) → 十进制余额与额度
// - MPT 持仓：(持有方, 发行标识) → 整数余额
//
// 状态保存在 KVStore 中，每次操作在单个事务内完成，失败整体回滚。
// 成功的写操作推进账本序号，转账返回的交易标识即新的账本序号。
package ledger

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// Ledger 进程内账本
type Ledger struct {
	store  storage.KVStore
	logger log.Logger

	// 写操作串行执行，避免 badger 乐观事务冲突
	mu sync.Mutex
}

// New 创建账本
func New(store storage.KVStore, logger log.Logger) *Ledger {
	return &Ledger{store: store, logger: logimpl.OrNop(logger)}
}

// update 在写事务中执行 fn，成功后推进账本序号
func (l *Ledger) update(ctx context.Context, fn func(st *state) error) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var seq int64
	err := l.store.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		st := &state{tx: tx}
		if err := fn(st); err != nil {
			return err
		}
		next, err := st.nextSequence()
		if err != nil {
			return err
		}
		seq = next
		return nil
	})
	if err != nil {
		return 0, asLedgerError(err)
	}
	return seq, nil
}

// ==================== 转账 ====================

// Transfer 从 from 向 to 转出 amount
//
// 成功返回新的账本序号（交易标识）；失败返回 *Error，Result 为负数。
func (l *Ledger) Transfer(ctx context.Context, from framework.AccountID, amount framework.Amount, to framework.AccountID) (int64, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	if from == to {
		return 0, newError(TemDST_IS_SRC, "源账户与目标账户相同")
	}

	seq, err := l.update(ctx, func(st *state) error {
		src, err := st.account(from)
		if err != nil {
			return err
		}
		if src == nil {
			return newError(TerNO_ACCOUNT, "源账户 %s 不存在", address.EncodeAccountID(from))
		}
		dst, err := st.account(to)
		if err != nil {
			return err
		}
		if dst == nil {
			return newError(TecNO_DST, "目标账户 %s 不存在", address.EncodeAccountID(to))
		}

		switch amount.Kind() {
		case framework.KindXRP:
			if err := payXRP(src, dst, amount.Drops()); err != nil {
				return err
			}
			if err := st.putAccount(to, dst); err != nil {
				return err
			}
		case framework.KindIOU:
			if err := st.payIOU(from, to, amount); err != nil {
				return err
			}
		case framework.KindMPT:
			if err := st.payMPT(from, to, amount); err != nil {
				return err
			}
		}

		src.Sequence++
		return st.putAccount(from, src)
	})
	if err != nil {
		l.logger.Debugf("转账被拒绝: asset=%s from=%s to=%s err=%v",
			AssetOf(amount), address.EncodeAccountID(from), address.EncodeAccountID(to), err)
		return 0, err
	}

	l.logger.Debugf("转账完成: seq=%d asset=%s from=%s to=%s",
		seq, AssetOf(amount), address.EncodeAccountID(from), address.EncodeAccountID(to))
	return seq, nil
}

func payXRP(src, dst *accountRecord, drops int64) error {
	if src.Drops < drops {
		return newError(TecUNFUNDED_PAYMENT, "余额 %d drops 不足 %d", src.Drops, drops)
	}
	if dst.Drops > framework.MaxNativeDrops-drops {
		return newError(TecPATH_DRY, "目标余额溢出")
	}
	src.Drops -= drops
	dst.Drops += drops
	return nil
}

// payIOU 发行货币转账
//
// 发行方转出为发行，转入发行方为赎回，其余为持有方之间的转移。
func (s *state) payIOU(from, to framework.AccountID, amount framework.Amount) error {
	value := IOUDecimal(amount)
	currency, issuer := amount.Currency(), amount.Issuer()

	if from != issuer {
		line, err := s.line(from, currency, issuer)
		if err != nil {
			return err
		}
		if line == nil {
			return newError(TecNO_LINE, "源账户没有 %s 信任线", currency)
		}
		if line.Balance.LessThan(value) {
			return newError(TecUNFUNDED_PAYMENT, "信任线余额 %s 不足 %s", line.Balance, value)
		}
		line.Balance = line.Balance.Sub(value)
		if err := s.putLine(from, currency, issuer, line); err != nil {
			return err
		}
	}

	if to != issuer {
		line, err := s.line(to, currency, issuer)
		if err != nil {
			return err
		}
		if line == nil {
			return newError(TecNO_LINE, "目标账户没有 %s 信任线", currency)
		}
		balance := line.Balance.Add(value)
		if balance.GreaterThan(line.Limit) {
			return newError(TecPATH_DRY, "超出目标信任线额度 %s", line.Limit)
		}
		line.Balance = balance
		if err := s.putLine(to, currency, issuer, line); err != nil {
			return err
		}
	}
	return nil
}

// payMPT MPT 转账，持仓需先授权（AuthorizeMPT）
func (s *state) payMPT(from, to framework.AccountID, amount framework.Amount) error {
	id, value := amount.MPTID(), amount.MPTValue()
	issuer := MPTIssuer(id)

	if from != issuer {
		h, err := s.holding(from, id)
		if err != nil {
			return err
		}
		if h == nil {
			return newError(TecNO_AUTH, "源账户未持有 %s", id)
		}
		if h.Amount < value {
			return newError(TecUNFUNDED_PAYMENT, "MPT 余额 %d 不足 %d", h.Amount, value)
		}
		h.Amount -= value
		if err := s.putHolding(from, id, h); err != nil {
			return err
		}
	}

	if to != issuer {
		h, err := s.holding(to, id)
		if err != nil {
			return err
		}
		if h == nil {
			return newError(TecNO_AUTH, "目标账户未持有 %s", id)
		}
		if h.Amount > math.MaxInt64-value {
			return newError(TecPATH_DRY, "目标 MPT 余额溢出")
		}
		h.Amount += value
		if err := s.putHolding(to, id, h); err != nil {
			return err
		}
	}
	return nil
}

// ==================== 准备与设置 ====================

// Fund 直接向账户注入资产，账户不存在时创建
//
// 发行货币与 MPT 会按需创建信任线/持仓，信任线额度至少覆盖新余额。
func (l *Ledger) Fund(ctx context.Context, to framework.AccountID, amount framework.Amount) (int64, error) {
	if to.IsZero() {
		return 0, newError(TecNO_DST, "账户为空")
	}
	if err := checkAmount(amount); err != nil {
		return 0, err
	}

	seq, err := l.update(ctx, func(st *state) error {
		acct, err := st.ensureAccount(to)
		if err != nil {
			return err
		}

		switch amount.Kind() {
		case framework.KindXRP:
			if acct.Drops > framework.MaxNativeDrops-amount.Drops() {
				return newError(TemBAD_AMOUNT, "超出原生货币上限")
			}
			acct.Drops += amount.Drops()
		case framework.KindIOU:
			if to == amount.Issuer() {
				return newError(TemBAD_ISSUER, "发行方不能持有自身发行的货币")
			}
			if err := st.fundLine(to, amount); err != nil {
				return err
			}
		case framework.KindMPT:
			if to == MPTIssuer(amount.MPTID()) {
				return newError(TemBAD_ISSUER, "发行方不能持有自身发行的 MPT")
			}
			if err := st.fundHolding(to, amount); err != nil {
				return err
			}
		}
		return st.putAccount(to, acct)
	})
	if err != nil {
		return 0, err
	}

	l.logger.Debugf("账户注资: seq=%d account=%s asset=%s", seq, address.EncodeAccountID(to), AssetOf(amount))
	return seq, nil
}

func (s *state) fundLine(holder framework.AccountID, amount framework.Amount) error {
	currency, issuer := amount.Currency(), amount.Issuer()
	line, err := s.line(holder, currency, issuer)
	if err != nil {
		return err
	}
	if line == nil {
		line = &lineRecord{}
	}
	line.Balance = line.Balance.Add(IOUDecimal(amount))
	if line.Balance.GreaterThan(line.Limit) {
		line.Limit = line.Balance
	}
	return s.putLine(holder, currency, issuer, line)
}

func (s *state) fundHolding(holder framework.AccountID, amount framework.Amount) error {
	id := amount.MPTID()
	h, err := s.holding(holder, id)
	if err != nil {
		return err
	}
	if h == nil {
		h = &mptRecord{}
	}
	if h.Amount > math.MaxInt64-amount.MPTValue() {
		return newError(TemBAD_AMOUNT, "MPT 余额溢出")
	}
	h.Amount += amount.MPTValue()
	return s.putHolding(holder, id, h)
}

// SetTrustLine 创建或修改信任线额度，持有方账户必须存在
func (l *Ledger) SetTrustLine(ctx context.Context, holder framework.AccountID, currency framework.Currency, issuer framework.AccountID, limit decimal.Decimal) (int64, error) {
	switch {
	case currency.IsXRP():
		return 0, newError(TemBAD_CURRENCY, "信任线不能使用 XRP 货币码")
	case issuer.IsZero():
		return 0, newError(TemBAD_ISSUER, "发行方为空")
	case holder == issuer:
		return 0, newError(TemDST_IS_SRC, "持有方与发行方相同")
	case limit.IsNegative():
		return 0, newError(TemBAD_LIMIT, "额度不能为负")
	}

	return l.update(ctx, func(st *state) error {
		acct, err := st.account(holder)
		if err != nil {
			return err
		}
		if acct == nil {
			return newError(TerNO_ACCOUNT, "账户 %s 不存在", address.EncodeAccountID(holder))
		}
		line, err := st.line(holder, currency, issuer)
		if err != nil {
			return err
		}
		if line == nil {
			line = &lineRecord{}
		}
		line.Limit = limit
		return st.putLine(holder, currency, issuer, line)
	})
}

// AuthorizeMPT 为账户创建空的 MPT 持仓，已存在时不做修改
func (l *Ledger) AuthorizeMPT(ctx context.Context, holder framework.AccountID, id framework.MPTID) (int64, error) {
	if MPTIssuer(id).IsZero() {
		return 0, newError(TemBAD_ISSUER, "MPT 发行方为空")
	}
	if holder == MPTIssuer(id) {
		return 0, newError(TemDST_IS_SRC, "持有方与发行方相同")
	}

	return l.update(ctx, func(st *state) error {
		acct, err := st.account(holder)
		if err != nil {
			return err
		}
		if acct == nil {
			return newError(TerNO_ACCOUNT, "账户 %s 不存在", address.EncodeAccountID(holder))
		}
		h, err := st.holding(holder, id)
		if err != nil || h != nil {
			return err
		}
		return st.putHolding(holder, id, &mptRecord{})
	})
}

// EnsureGenesis 账户不存在时注入初始 XRP，返回是否执行了注入
func (l *Ledger) EnsureGenesis(ctx context.Context, account framework.AccountID, drops int64) (bool, error) {
	if account.IsZero() || drops <= 0 {
		return false, nil
	}
	if _, err := l.Account(ctx, account); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrAccountNotFound) {
		return false, err
	}
	if _, err := l.Fund(ctx, account, framework.XRP(drops)); err != nil {
		return false, err
	}
	l.logger.Infof("创世注资完成: account=%s drops=%d", address.EncodeAccountID(account), drops)
	return true, nil
}

// ==================== 查询 ====================

// TrustLine 信任线视图
type TrustLine struct {
	Currency string          `json:"currency"`
	Issuer   string          `json:"issuer"`
	Balance  decimal.Decimal `json:"balance"`
	Limit    decimal.Decimal `json:"limit"`
}

// MPToken MPT 持仓视图
type MPToken struct {
	MPTID  string `json:"mpt_id"`
	Issuer string `json:"issuer"`
	Amount int64  `json:"amount"`
}

// AccountInfo 账户视图
type AccountInfo struct {
	Address    string      `json:"address"`
	AccountID  string      `json:"account_id"`
	Drops      int64       `json:"drops"`
	Sequence   uint32      `json:"sequence"`
	CreatedAt  int64       `json:"created_at"`
	TrustLines []TrustLine `json:"trust_lines"`
	MPTokens   []MPToken   `json:"mptokens"`
}

// Account 查询账户及其信任线和 MPT 持仓
func (l *Ledger) Account(ctx context.Context, id framework.AccountID) (*AccountInfo, error) {
	data, err := l.store.Get(ctx, accountKey(id))
	if err != nil {
		return nil, asLedgerError(err)
	}
	if data == nil {
		return nil, ErrAccountNotFound
	}
	var rec accountRecord
	if err := decodeRecord(data, &rec); err != nil {
		return nil, asLedgerError(err)
	}

	info := &AccountInfo{
		Address:    address.EncodeAccountID(id),
		AccountID:  id.String(),
		Drops:      rec.Drops,
		Sequence:   rec.Sequence,
		CreatedAt:  rec.CreatedAt,
		TrustLines: []TrustLine{},
		MPTokens:   []MPToken{},
	}

	lines, err := l.store.PrefixScan(ctx, joinKey(linePrefix, id[:]))
	if err != nil {
		return nil, asLedgerError(err)
	}
	for key, value := range lines {
		raw := []byte(key)[len(linePrefix)+framework.AccountIDSize:]
		var currency framework.Currency
		var issuer framework.AccountID
		copy(currency[:], raw[:len(currency)])
		copy(issuer[:], raw[len(currency):])

		var line lineRecord
		if err := decodeRecord(value, &line); err != nil {
			return nil, asLedgerError(err)
		}
		info.TrustLines = append(info.TrustLines, TrustLine{
			Currency: currency.String(),
			Issuer:   address.EncodeAccountID(issuer),
			Balance:  line.Balance,
			Limit:    line.Limit,
		})
	}
	sort.Slice(info.TrustLines, func(i, j int) bool {
		a, b := info.TrustLines[i], info.TrustLines[j]
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		return a.Issuer < b.Issuer
	})

	holdings, err := l.store.PrefixScan(ctx, joinKey(mptPrefix, id[:]))
	if err != nil {
		return nil, asLedgerError(err)
	}
	for key, value := range holdings {
		var mptID framework.MPTID
		copy(mptID[:], []byte(key)[len(mptPrefix)+framework.AccountIDSize:])

		var h mptRecord
		if err := decodeRecord(value, &h); err != nil {
			return nil, asLedgerError(err)
		}
		info.MPTokens = append(info.MPTokens, MPToken{
			MPTID:  mptID.String(),
			Issuer: address.EncodeAccountID(MPTIssuer(mptID)),
			Amount: h.Amount,
		})
	}
	sort.Slice(info.MPTokens, func(i, j int) bool { return info.MPTokens[i].MPTID < info.MPTokens[j].MPTID })

	return info, nil
}

// Balance 查询账户某一资产的余额
//
// XRP 以 drops 计；没有信任线或持仓时余额为零。
func (l *Ledger) Balance(ctx context.Context, id framework.AccountID, asset Asset) (decimal.Decimal, error) {
	var (
		balance decimal.Decimal
		found   bool
	)
	err := l.store.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		st := &state{tx: tx}
		acct, err := st.account(id)
		if err != nil || acct == nil {
			return err
		}
		found = true

		switch asset.Kind {
		case framework.KindIOU:
			line, err := st.line(id, asset.Currency, asset.Issuer)
			if err != nil {
				return err
			}
			if line != nil {
				balance = line.Balance
			}
		case framework.KindMPT:
			h, err := st.holding(id, asset.MPTID)
			if err != nil {
				return err
			}
			if h != nil {
				balance = decimal.NewFromInt(h.Amount)
			}
		default:
			balance = decimal.NewFromInt(acct.Drops)
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, asLedgerError(err)
	}
	if !found {
		return decimal.Zero, ErrAccountNotFound
	}
	return balance, nil
}

// Sequence 当前账本序号
func (l *Ledger) Sequence(ctx context.Context) (int64, error) {
	var seq int64
	err := l.store.RunInTransaction(ctx, func(tx storage.KVTransaction) error {
		var err error
		seq, err = (&state{tx: tx}).sequence()
		return err
	})
	if err != nil {
		return 0, asLedgerError(err)
	}
	return seq, nil
}
