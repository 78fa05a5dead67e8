package devnet

import (
	"encoding/binary"
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"

	"evtc/pkg/chain/types"
	"evtc/pkg/crypto_util"
	"evtc/pkg/keys"
	"evtc/pkg/logger"
	"evtc/pkg/monitor"

	"go.uber.org/zap"
)

const (
	DefaultLibLag        = 2
	DefaultMaxExpiration = time.Hour
	producerName         = "evt"
)

// Options 账本参数
type Options struct {
	ChainID       types.ChainID
	LibLag        uint32
	MaxExpiration time.Duration
	Clock         func() time.Time
	Accounts      []GenesisAccount
}

// GenesisAccount 创世时直接写入状态的账户
type GenesisAccount struct {
	Name    types.Name128
	Owner   []keys.PublicKey
	Balance types.Asset
}

// Ledger 内存中的单节点账本：每笔被接受的交易产生一个新区块，不可逆块落后头块 LibLag 个。
// 区块只在有交易时产生，get_info 的头块时间直接取时钟。
type Ledger struct {
	mu   sync.RWMutex
	opts Options
	log  *zap.Logger

	blocks    []*types.BlockResult
	byID      map[types.BlockID]*types.BlockResult
	st        *state
	history   map[types.TransactionID]*types.TransactionRecord
	byAccount map[types.Name128][]*types.TransactionRecord
	seq       int64
	peers     map[string]*types.PeerStatus
}

func NewLedger(opts Options, log *zap.Logger) *Ledger {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.MaxExpiration <= 0 {
		opts.MaxExpiration = DefaultMaxExpiration
	}

	l := &Ledger{
		opts:      opts,
		log:       logger.Or(log),
		byID:      make(map[types.BlockID]*types.BlockResult),
		st:        newState(),
		history:   make(map[types.TransactionID]*types.TransactionRecord),
		byAccount: make(map[types.Name128][]*types.TransactionRecord),
		peers:     make(map[string]*types.PeerStatus),
	}
	created := types.NewTimePointSec(l.now())
	for _, a := range opts.Accounts {
		bal := a.Balance
		if bal.Symbol == "" {
			bal.Symbol = types.DefaultSymbol
		}
		l.st.accounts[a.Name] = &types.AccountResult{Name: a.Name, Balance: bal, Owner: copyKeys(a.Owner), CreateTime: created}
	}
	l.appendBlock(nil)
	return l
}

func (l *Ledger) now() time.Time {
	return l.opts.Clock().UTC()
}

// appendBlock 调用方持有写锁
func (l *Ledger) appendBlock(trxs []types.TransactionID) *types.BlockResult {
	var prev types.BlockID
	if n := len(l.blocks); n > 0 {
		prev = l.blocks[n-1].ID
	}
	num := uint32(len(l.blocks) + 1)
	ts := l.now()

	var tsBytes [8]byte
	binary.BigEndian.PutUint64(tsBytes[:], uint64(ts.UnixNano()))
	parts := [][]byte{prev[:], tsBytes[:]}
	for _, id := range trxs {
		parts = append(parts, id[:])
	}

	id := types.MakeBlockID(num, crypto_util.SHA256(parts...))
	b := &types.BlockResult{
		ID:             id,
		BlockNum:       num,
		Timestamp:      types.TimePoint{Time: ts},
		Previous:       prev,
		Producer:       producerName,
		RefBlockPrefix: id.Prefix(),
		Transactions:   append([]types.TransactionID{}, trxs...),
	}
	l.blocks = append(l.blocks, b)
	l.byID[id] = b

	monitor.Chain.Height(num, l.libNum())
	return b
}

func (l *Ledger) head() *types.BlockResult {
	return l.blocks[len(l.blocks)-1]
}

func (l *Ledger) libNum() uint32 {
	head := uint32(len(l.blocks))
	if head <= l.opts.LibLag {
		return 1
	}
	return head - l.opts.LibLag
}

func (l *Ledger) Info() *types.InfoResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	head := l.head()
	lib := l.blocks[l.libNum()-1]
	return &types.InfoResult{
		ServerVersion:            "devnet",
		ChainID:                  l.opts.ChainID,
		EvtAPIVersion:            "1.0.0",
		HeadBlockNum:             head.BlockNum,
		LastIrreversibleBlockNum: lib.BlockNum,
		LastIrreversibleBlockID:  lib.ID,
		HeadBlockID:              head.ID,
		HeadBlockTime:            types.TimePoint{Time: l.now()},
		HeadBlockProducer:        producerName,
	}
}

// Block 按区块号或区块 id 查询
func (l *Ledger) Block(numOrID string) (*types.BlockResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n, err := strconv.ParseUint(numOrID, 10, 32); err == nil {
		if n == 0 || n > uint64(len(l.blocks)) {
			return nil, errUnknownBlock.Errorf("block %s not found", numOrID)
		}
		return l.blocks[n-1], nil
	}

	id, err := types.ParseBlockID(numOrID)
	if err != nil {
		return nil, errUnknownBlock.Errorf("invalid block number or id %q", numOrID)
	}
	b, ok := l.byID[id]
	if !ok {
		return nil, errUnknownBlock.Errorf("block %s not found", numOrID)
	}
	return b, nil
}

// walk 依次计算每个 action 的授权并在状态副本上执行，返回执行后的副本
func (l *Ledger) walk(trx *types.Transaction, now time.Time) (*state, []checked, []types.Name128, error) {
	next := l.st.clone()
	checks := make([]checked, 0, len(trx.Actions))
	var touched []types.Name128

	for _, act := range trx.Actions {
		p, err := act.Decode()
		if err != nil {
			return nil, nil, nil, errActionValidate.Errorf("%v", err)
		}
		auth, err := authorityFor(next, p)
		if err != nil {
			return nil, nil, nil, err
		}
		// apply 会替换 next.groups 中的条目，这里保留执行前的快照
		groups := make(map[string]*types.Group, len(next.groups))
		for k, v := range next.groups {
			groups[k] = v
		}
		checks = append(checks, checked{auth: auth, groups: groups})

		if err := next.apply(p, now); err != nil {
			return nil, nil, nil, err
		}
		touched = append(touched, touchedAccounts(p)...)
	}
	return next, checks, touched, nil
}

// RequiredKeys 从 available 中选出满足交易全部授权的公钥
func (l *Ledger) RequiredKeys(trx *types.Transaction, available []keys.PublicKey) ([]keys.PublicKey, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, checks, _, err := l.walk(trx, l.now())
	if err != nil {
		monitor.Chain.RequiredKeys("invalid")
		return nil, err
	}

	required, ok := requiredKeys(checks, available)
	if !ok {
		monitor.Chain.RequiredKeys("unsatisfied")
		return nil, errUnsatisfied.Errorf("available keys cannot satisfy the authorization of %d action(s)", len(checks))
	}
	monitor.Chain.RequiredKeys("ok")
	return required, nil
}

// refBlock TAPOS：区块号低 16 位与前缀都要匹配
func (l *Ledger) refBlock(num uint16, prefix uint32) *types.BlockResult {
	for i := len(l.blocks) - 1; i >= 0; i-- {
		b := l.blocks[i]
		if uint16(b.BlockNum) == num && b.ID.Prefix() == prefix {
			return b
		}
	}
	return nil
}

// Push 校验过期时间、TAPOS、签名后执行交易并出块
func (l *Ledger) Push(packed *types.PackedTransaction) (*types.PushResult, error) {
	res, err := l.push(packed)
	if err != nil {
		monitor.Chain.Transaction("rejected")
		l.log.Info("transaction rejected", zap.Error(err))
		return nil, err
	}
	monitor.Chain.Transaction("accepted")
	return res, nil
}

func (l *Ledger) push(packed *types.PackedTransaction) (*types.PushResult, error) {
	st, err := packed.Unpack()
	if err != nil {
		return nil, errPackedTransaction.Errorf("%v", err)
	}
	id, err := st.ID()
	if err != nil {
		return nil, errPackedTransaction.Errorf("%v", err)
	}
	if len(st.Actions) == 0 {
		return nil, errActionValidate.Errorf("transaction %s has no actions", id)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.history[id]; ok {
		return nil, errDuplicate.Errorf("transaction %s", id)
	}

	now := l.now()
	exp := st.Expiration.Time()
	if !exp.After(now) {
		return nil, errExpired.Errorf("expiration %s, now %s", st.Expiration, now.Format("2006-01-02T15:04:05"))
	}
	if exp.Sub(now) > l.opts.MaxExpiration {
		return nil, errExpirationTooFar.Errorf("expiration %s is more than %s ahead", st.Expiration, l.opts.MaxExpiration)
	}

	if l.refBlock(st.RefBlockNum, st.RefBlockPrefix) == nil {
		return nil, errInvalidRefBlock.Errorf("ref_block_num %d, ref_block_prefix %d", st.RefBlockNum, st.RefBlockPrefix)
	}

	signers, err := st.SignatureKeys(l.opts.ChainID)
	if err != nil {
		return nil, errUnsatisfied.Errorf("invalid signature: %v", err)
	}

	next, checks, touched, err := l.walk(&st.Transaction, now)
	if err != nil {
		return nil, err
	}
	signerSet := newKeySet(signers)
	for _, c := range checks {
		if !c.auth.satisfied(c.groups, signerSet) {
			return nil, errUnsatisfied.Errorf("%s: signatures do not satisfy permission %q", c.auth.action, c.auth.perm.Name)
		}
	}

	l.st = next
	block := l.appendBlock([]types.TransactionID{id})

	l.seq++
	rec := &types.TransactionRecord{
		SeqNum:        l.seq,
		TransactionID: id,
		BlockNum:      block.BlockNum,
		Transaction:   types.HistoryTransaction{Signatures: st.Signatures, Data: st.Transaction},
	}
	l.history[id] = rec
	seen := make(map[types.Name128]bool)
	for _, name := range touched {
		if !seen[name] {
			seen[name] = true
			l.byAccount[name] = append(l.byAccount[name], rec)
		}
	}

	l.log.Info("transaction accepted", zap.Stringer("trx_id", id), zap.Uint32("block", block.BlockNum), zap.Int("actions", len(st.Actions)))

	type trace struct {
		Name   string        `json:"name"`
		Domain types.Name128 `json:"domain"`
		Key    types.Name128 `json:"key"`
	}
	traces := make([]trace, 0, len(st.Actions))
	for _, a := range st.Actions {
		traces = append(traces, trace{Name: a.Name, Domain: a.Domain, Key: a.Key})
	}
	processed, err := json.Marshal(map[string]interface{}{
		"id":            id,
		"block_num":     block.BlockNum,
		"block_time":    block.Timestamp,
		"action_traces": traces,
	})
	if err != nil {
		return nil, err
	}
	return &types.PushResult{TransactionID: id, Processed: processed}, nil
}

// PushBatch 逐个提交，每笔交易的结果或错误按顺序返回
func (l *Ledger) PushBatch(trxs []types.PackedTransaction) []interface{} {
	out := make([]interface{}, 0, len(trxs))
	for i := range trxs {
		res, err := l.Push(&trxs[i])
		if err != nil {
			out = append(out, map[string]interface{}{"error": err.Error()})
			continue
		}
		out = append(out, res)
	}
	return out
}

// Fund 给账户直接记入余额，用于初始化
func (l *Ledger) Fund(name types.Name128, amount types.Asset) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.st.accounts[name]
	if !ok {
		return errUnknownAccount.Errorf("%s", name)
	}
	if a.Balance.Symbol != amount.Symbol {
		return errActionValidate.Errorf("symbol %s does not match balance symbol %s", amount.Symbol, a.Balance.Symbol)
	}
	next := *a
	next.Balance.Amount += amount.Amount
	l.st.accounts[name] = &next
	return nil
}

func (l *Ledger) Domain(name types.Name128) (*types.DomainResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.st.domains[name]
	if !ok {
		return nil, errUnknownDomain.Errorf("%s", name)
	}
	return d, nil
}

func (l *Ledger) Token(domain, name types.Name128) (*types.TokenResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t := l.st.token(domain, name)
	if t == nil {
		return nil, errUnknownToken.Errorf("%s in domain %s", name, domain)
	}
	return t, nil
}

func (l *Ledger) Group(id string) (*types.Group, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.st.groups[id]
	if !ok {
		return nil, errUnknownGroup.Errorf("%s", id)
	}
	return g, nil
}

func (l *Ledger) Account(name types.Name128) (*types.AccountResult, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.st.accounts[name]
	if !ok {
		return nil, errUnknownAccount.Errorf("%s", name)
	}
	return a, nil
}

func (l *Ledger) Transaction(id types.TransactionID) (*types.TransactionRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.history[id]
	if !ok {
		return nil, errUnknownTransaction.Errorf("%s", id)
	}
	return rec, nil
}

// Transactions 最近的在前；skip 跳过最近的若干条，num 为 0 时返回全部
func (l *Ledger) Transactions(account types.Name128, skip, num int) *types.TransactionsResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	recs := l.byAccount[account]
	out := make([]types.TransactionRecord, 0, len(recs))
	for i := len(recs) - 1 - skip; i >= 0; i-- {
		if num > 0 && len(out) == num {
			break
		}
		out = append(out, *recs[i])
	}
	return &types.TransactionsResult{Transactions: out}
}

// net 接口只记录对端地址，不建立真实连接

func (l *Ledger) Connect(host string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.peers[host]; ok {
		return "already connected"
	}
	l.peers[host] = &types.PeerStatus{Peer: host, LastHandshake: l.now().Format("2006-01-02T15:04:05")}
	return "added connection"
}

func (l *Ledger) Disconnect(host string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.peers[host]; !ok {
		return "no known connection for host"
	}
	delete(l.peers, host)
	return "connection removed"
}

func (l *Ledger) PeerStatus(host string) *types.PeerStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.peers[host]
}

func (l *Ledger) Peers() []types.PeerStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.PeerStatus, 0, len(l.peers))
	for _, p := range l.peers {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Peer < out[j].Peer })
	return out
}
