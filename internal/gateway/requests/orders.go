package requests

type CreateOrder struct {
	GameType     string `json:"game_type"`
	ServerRegion string `json:"server_region"`
	GameAccount  string `json:"game_account"`
	GameMode     string `json:"game_mode"`
	ServiceType  string `json:"service_type"`
	CurrentRank  string `json:"current_rank"`
	TargetRank   string `json:"target_rank"`
	PUUID        string `json:"PUUID,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	TotalAmount  string `json:"total_amount"`
	Deadline     string `json:"deadline"`
	TxHash       string `json:"tx_hash"`
}

type AcceptOrder struct {
	OrderID int64  `json:"order_id"`
	TxHash  string `json:"tx_hash"`
}

func NewAcceptOrder(orderID int64, txHash string) AcceptOrder {
	return AcceptOrder{OrderID: orderID, TxHash: txHash}
}

type ConfirmOrder struct {
	OrderID int64  `json:"order_id"`
	TxHash  string `json:"tx_hash"`
}

func NewConfirmOrder(orderID int64, txHash string) ConfirmOrder {
	return ConfirmOrder{OrderID: orderID, TxHash: txHash}
}

type CompleteOrder struct {
	OrderID          int64  `json:"order_id"`
	Note             string `json:"note"`
	TxHash           string `json:"tx_hash"`
	CompletionStatus string `json:"completion_status"`
}

func NewCompleteOrder(orderID int64, note, txHash, completionStatus string) CompleteOrder {
	return CompleteOrder{OrderID: orderID, Note: note, TxHash: txHash, CompletionStatus: completionStatus}
}

type CancelOrder struct {
	OrderID int64  `json:"order_id"`
	Reason  string `json:"reason"`
	TxHash  string `json:"tx_hash"`
}

func NewCancelOrder(orderID int64, reason, txHash string) CancelOrder {
	return CancelOrder{OrderID: orderID, Reason: reason, TxHash: txHash}
}
