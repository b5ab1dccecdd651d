package mirror

type AccountInfo struct {
	Account    string         `json:"account"`
	EvmAddress string         `json:"evm_address"`
	Key        map[string]any `json:"key"`
	Memo       string         `json:"memo"`
	Deleted    bool           `json:"deleted"`
}

type ContractInfo struct {
	ContractID       string `json:"contract_id"`
	EvmAddress       string `json:"evm_address"`
	CreatedTimestamp string `json:"created_timestamp"`
	FileID           string `json:"file_id"`
	Memo             string `json:"memo"`
	Deleted          bool   `json:"deleted"`
}

type ContractResult struct {
	ContractID   string `json:"contract_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	GasUsed      int64  `json:"gas_used"`
	BlockNumber  int64  `json:"block_number"`
	Hash         string `json:"hash"`
	Result       string `json:"result"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Timestamp    string `json:"timestamp"`
}
