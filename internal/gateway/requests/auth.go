package requests

type CheckWallet struct {
	WalletAddress string `json:"wallet_address"`
}

func NewCheckWallet(address string) CheckWallet {
	return CheckWallet{WalletAddress: address}
}

type Login struct {
	WalletAddress string `json:"wallet_address"`
	Message       string `json:"message"`
	Signature     string `json:"signature"`
}

func NewLogin(address, message, signature string) Login {
	return Login{WalletAddress: address, Message: message, Signature: signature}
}

type Register struct {
	WalletAddress string `json:"wallet_address"`
	Message       string `json:"message"`
	Signature     string `json:"signature"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
}

type Refresh struct {
	RefreshToken string `json:"refresh_token"`
}

func NewRefresh(refreshToken string) Refresh {
	return Refresh{RefreshToken: refreshToken}
}
