package cli

import (
	"time"

	"github.com/alecthomas/kingpin"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3"

	"github.com/uplift-force/coordinator-svc/internal/config"
	"github.com/uplift-force/coordinator-svc/internal/coordinator"
	"github.com/uplift-force/coordinator-svc/internal/service"
)

func Run(args []string) bool {
	log := logan.New()

	defer func() {
		if rvr := recover(); rvr != nil {
			log.WithRecover(rvr).Error("app panicked")
		}
	}()

	cfg := config.New(kv.MustFromEnv())
	log = cfg.Log()

	app := kingpin.New("coordinator-svc", "order lifecycle coordinator for the boosting marketplace")

	runCmd := app.Command("run", "run command")
	serviceCmd := runCmd.Command("service", "run the split-state reconciler")

	authCmd := app.Command("auth", "wallet session commands")
	loginCmd := authCmd.Command("login", "sign the wallet challenge and obtain a token pair")
	registerCmd := authCmd.Command("register", "register this wallet and log in")
	registerUsername := registerCmd.Flag("username", "display name").Required().String()
	registerEmail := registerCmd.Flag("email", "contact email").Required().String()
	registerRole := registerCmd.Flag("role", "player or booster").Required().String()
	logoutCmd := authCmd.Command("logout", "invalidate the session and drop local tokens")

	ordersCmd := app.Command("orders", "order lifecycle commands")

	listCmd := ordersCmd.Command("list", "list orders")
	listAll := listCmd.Flag("all", "list the whole marketplace instead of own orders").Bool()
	listStatus := listCmd.Flag("status", "filter by status").String()
	listPage := listCmd.Flag("page", "page number").Default("1").Int()
	listPageSize := listCmd.Flag("page-size", "page size").Default("20").Int()

	createCmd := ordersCmd.Command("create", "post an order, escrowing the player deposit")
	createGameType := createCmd.Flag("game-type", "game identifier").Required().String()
	createServerRegion := createCmd.Flag("server-region", "game server region").Required().String()
	createGameAccount := createCmd.Flag("game-account", "account to boost").Required().String()
	createGameMode := createCmd.Flag("game-mode", "queue or mode").Required().String()
	createServiceType := createCmd.Flag("service-type", "kind of boosting service").Required().String()
	createCurrentRank := createCmd.Flag("current-rank", "rank now").Required().String()
	createTargetRank := createCmd.Flag("target-rank", "rank to reach").Required().String()
	createPUUID := createCmd.Flag("puuid", "verified player id").String()
	createRequirements := createCmd.Flag("requirements", "free-form requirements").String()
	createTotal := createCmd.Flag("total", "total order amount in native currency, e.g. 2.5").Required().String()
	createDeadlineIn := createCmd.Flag("deadline-in", "time until the order deadline, e.g. 72h").Required().Duration()

	acceptCmd := ordersCmd.Command("accept", "accept an order, escrowing the booster deposit")
	acceptID := acceptCmd.Arg("order-id", "order to accept").Required().Int64()

	confirmCmd := ordersCmd.Command("confirm", "confirm an accepted order, paying the remainder")
	confirmID := confirmCmd.Arg("order-id", "order to confirm").Required().Int64()

	completeCmd := ordersCmd.Command("complete", "request completion and await the settlement verdict")
	completeID := completeCmd.Arg("order-id", "order to complete").Required().Int64()

	cancelCmd := ordersCmd.Command("cancel", "cancel an order")
	cancelID := cancelCmd.Arg("order-id", "order to cancel").Required().Int64()
	cancelReason := cancelCmd.Flag("reason", "cancellation reason").Required().String()

	cmd, err := app.Parse(args[1:])
	if err != nil {
		log.WithError(err).Error("failed to parse arguments")
		return false
	}

	switch cmd {
	case serviceCmd.FullCommand():
		service.Run(cfg)
	case loginCmd.FullCommand():
		return newApp(cfg).login()
	case registerCmd.FullCommand():
		return newApp(cfg).register(*registerUsername, *registerEmail, *registerRole)
	case logoutCmd.FullCommand():
		return newApp(cfg).logout()
	case listCmd.FullCommand():
		return newApp(cfg).listOrders(*listAll, *listStatus, *listPage, *listPageSize)
	case createCmd.FullCommand():
		return newApp(cfg).createOrder(coordinator.CreateDraft{
			GameType:     *createGameType,
			ServerRegion: *createServerRegion,
			GameAccount:  *createGameAccount,
			GameMode:     *createGameMode,
			ServiceType:  *createServiceType,
			CurrentRank:  *createCurrentRank,
			TargetRank:   *createTargetRank,
			PUUID:        *createPUUID,
			Requirements: *createRequirements,
			TotalAmount:  *createTotal,
			Deadline:     time.Now().Add(*createDeadlineIn),
		})
	case acceptCmd.FullCommand():
		return newApp(cfg).acceptOrder(*acceptID)
	case confirmCmd.FullCommand():
		return newApp(cfg).confirmOrder(*confirmID)
	case completeCmd.FullCommand():
		return newApp(cfg).completeOrder(*completeID)
	case cancelCmd.FullCommand():
		return newApp(cfg).cancelOrder(*cancelID, *cancelReason)
	default:
		log.Errorf("unknown command %s", cmd)
		return false
	}

	return true
}
