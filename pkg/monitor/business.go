package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ChainMetrics devnet 账本与钱包的业务指标
type ChainMetrics struct {
	TransactionsTotal   *prometheus.CounterVec
	HeadBlockNum        prometheus.Gauge
	LastIrreversibleNum prometheus.Gauge
	RequiredKeysTotal   *prometheus.CounterVec
	WalletSignTotal     *prometheus.CounterVec
	QueueMessagesTotal  *prometheus.CounterVec
}

// Global Metrics Instance
var Chain *ChainMetrics

// InitChainMetrics 初始化业务指标
func InitChainMetrics() {
	Chain = &ChainMetrics{
		TransactionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evt_transactions_total",
			Help: "Transactions received by the ledger, by result",
		}, []string{"result"}),
		HeadBlockNum: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "evt_head_block_num",
			Help: "Current head block number",
		}),
		LastIrreversibleNum: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "evt_last_irreversible_block_num",
			Help: "Current last irreversible block number",
		}),
		RequiredKeysTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evt_required_keys_total",
			Help: "get_required_keys calls, by result",
		}, []string{"result"}),
		WalletSignTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evt_wallet_sign_total",
			Help: "Wallet sign_transaction calls, by result",
		}, []string{"result"}),
		QueueMessagesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evt_queue_messages_total",
			Help: "Queued transactions handled by the broadcaster worker, by result",
		}, []string{"result"}),
	}
}

// 以下方法在 Chain 未初始化 (nil) 时什么都不做

func (m *ChainMetrics) Transaction(result string) {
	if m == nil {
		return
	}
	m.TransactionsTotal.WithLabelValues(result).Inc()
}

func (m *ChainMetrics) RequiredKeys(result string) {
	if m == nil {
		return
	}
	m.RequiredKeysTotal.WithLabelValues(result).Inc()
}

func (m *ChainMetrics) WalletSign(result string) {
	if m == nil {
		return
	}
	m.WalletSignTotal.WithLabelValues(result).Inc()
}

func (m *ChainMetrics) QueueMessage(result string) {
	if m == nil {
		return
	}
	m.QueueMessagesTotal.WithLabelValues(result).Inc()
}

func (m *ChainMetrics) Height(head, lib uint32) {
	if m == nil {
		return
	}
	m.HeadBlockNum.Set(float64(head))
	m.LastIrreversibleNum.Set(float64(lib))
}
