package data

// OrderStatus is the backend-owned lifecycle state of an order. Transitions
// are monotonic along posted -> accepted -> confirmed -> in_progress ->
// completed; cancelled and failed are reachable from the non-terminal states.
// The client never invents a transition, it only requests one and reflects
// the record the backend returns.
type OrderStatus string

const (
	StatusPosted     OrderStatus = "posted"
	StatusAccepted   OrderStatus = "accepted"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
	StatusFailed     OrderStatus = "failed"
)

type Role string

const (
	RolePlayer  Role = "player"
	RoleBooster Role = "booster"
)

// Order is a boosting engagement between a player and a booster. All money
// fields are decimal strings denominated in the native chain currency.
type Order struct {
	ID           int64  `json:"id"`
	OrderNo      string `json:"order_no"`
	ChainOrderID string `json:"chain_order_id"`

	PlayerID        int64  `json:"player_id"`
	PlayerUsername  string `json:"player_username"`
	BoosterID       int64  `json:"booster_id,omitempty"`
	BoosterUsername string `json:"booster_username,omitempty"`

	GameType     string `json:"game_type"`
	ServerRegion string `json:"server_region"`
	GameAccount  string `json:"game_account"`
	GameMode     string `json:"game_mode"`
	ServiceType  string `json:"service_type"`
	CurrentRank  string `json:"current_rank"`
	TargetRank   string `json:"target_rank"`
	Requirements string `json:"requirements,omitempty"`
	PUUID        string `json:"PUUID,omitempty"`

	TotalAmount     string `json:"total_amount"`
	PlayerDeposit   string `json:"player_deposit,omitempty"`
	RemainingAmount string `json:"remaining_amount,omitempty"`
	BoosterDeposit  string `json:"booster_deposit,omitempty"`

	Status OrderStatus `json:"status"`

	Deadline    string `json:"deadline"`
	PostedAt    string `json:"posted_at,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	AcceptedAt  string `json:"accepted_at,omitempty"`
	ConfirmedAt string `json:"confirmed_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	CancelledAt string `json:"cancelled_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`

	DepositTxHash        string `json:"deposit_tx_hash,omitempty"`
	BoosterDepositTxHash string `json:"booster_deposit_tx_hash,omitempty"`
	PaymentTxHash        string `json:"payment_tx_hash,omitempty"`
	SettlementTxHash     string `json:"settlement_tx_hash,omitempty"`

	// MyRole is annotated by the backend relative to the authenticated
	// viewer. It is a backend contract, never derived client-side.
	MyRole Role `json:"my_role,omitempty"`
}

// User is the wallet-keyed identity held in memory for the session; only the
// token pair is persisted.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	WalletAddress string `json:"wallet_address"`
	Role          Role   `json:"role"`
	Status        int    `json:"status"`
	IsVerified    int    `json:"is_verified"`
	Avatar        string `json:"avatar,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// Tokens is the opaque access/refresh pair returned by login, register and
// refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PlayerAccount is a read-only projection of third-party game-API data used
// to pre-fill order creation.
type PlayerAccount struct {
	Summoner struct {
		PUUID string `json:"puuid"`
		Name  string `json:"name"`
		Level int    `json:"summonerLevel"`
	} `json:"summoner"`
	LeagueEntries []RankEntry `json:"leagueEntries"`
}

type RankEntry struct {
	QueueType string `json:"queueType"`
	Tier      string `json:"tier"`
	Rank      string `json:"rank"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
}
