package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splittab/splittab/internal/auth"
	"github.com/splittab/splittab/internal/config"
	"github.com/splittab/splittab/internal/handler"
	"github.com/splittab/splittab/internal/middleware"
	"github.com/splittab/splittab/internal/service"
	"github.com/splittab/splittab/internal/storage/sqlite"
	"github.com/splittab/splittab/pkg/logging"
)

func main() {
	configPath := flag.String("config", "splittab.yaml", "path to config file")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevelName(cfg.Log.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authenticator := auth.NewPasswordAuthenticator(store)

	groupService := service.NewGroupService(store)
	balanceService := service.NewBalanceService(store)

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(authenticator, jwtManager)),
		Expense:  handler.NewExpenseHandler(service.NewExpenseService(store)),
		Group:    handler.NewGroupHandler(groupService, balanceService, service.NewSettlementService(store, groupService)),
		Friend:   handler.NewFriendHandler(service.NewFriendService(store)),
		Balance:  handler.NewBalanceHandler(balanceService),
		Category: handler.NewCategoryHandler(service.NewCategoryService(store)),
	}

	router := handler.NewRouter(handlers, jwtManager)
	root := middleware.Logging(middleware.CORS(router))

	// h2c allows HTTP/2 without TLS for clients that want multiplexing
	// behind a terminating proxy.
	h2cHandler := h2c.NewHandler(root, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
