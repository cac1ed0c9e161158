package ledger

const (
	defaultBackend    = BackendMemory
	defaultDataDir    = "./data"
	defaultSyncWrites = false

	// defaultContractAccount 开发用合约账户
	defaultContractAccount = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

	// defaultGenesisDrops 1000 XRP
	defaultGenesisDrops = int64(1_000_000_000)
)
