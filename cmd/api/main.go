package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "p2p-loan-escrow/internal/adapter/http"
	appmw "p2p-loan-escrow/internal/adapter/middleware"
	"p2p-loan-escrow/internal/adapter/repository/mysql"
	"p2p-loan-escrow/internal/config"
	"p2p-loan-escrow/internal/domain/asset"
	loanDomain "p2p-loan-escrow/internal/domain/loan"
	stepDomain "p2p-loan-escrow/internal/domain/step"
	"p2p-loan-escrow/internal/infrastructure/cache"
	"p2p-loan-escrow/internal/infrastructure/db"
	accountUC "p2p-loan-escrow/internal/usecase/account"
	loanUC "p2p-loan-escrow/internal/usecase/loan"
	stepUC "p2p-loan-escrow/internal/usecase/step"
	tokenUC "p2p-loan-escrow/internal/usecase/token"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&loanDomain.Loan{}, &asset.Balance{}, &stepDomain.Counter{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loans := mysql.NewLoanRepository(gdb)
	balances := mysql.NewBalanceRepository(gdb)
	steps := mysql.NewStepRepository(gdb)
	guow := mysql.NewGormUoW(gdb, cfg.TokenOwner)

	loanUc := loanUC.NewUsecase(loans, guow, cfg.EscrowAccount)
	tokenUc := tokenUC.NewUsecase(balances, guow)
	accountUc := accountUC.NewUsecase(balances, guow, cfg.TokenOwner)
	stepUc := stepUC.NewUsecase(steps, guow)

	h := httpadp.NewHandler()
	lh := httpadp.NewLoanHandler(loanUc)
	th := httpadp.NewTokenHandler(tokenUc)
	ah := httpadp.NewAccountHandler(accountUc)
	sh := httpadp.NewStepHandler(stepUc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/loans", lh.CreateLoan, idemp)
	e.POST("/loans/:loan_id/cancel", lh.CancelLoan, idemp)
	e.POST("/loans/:loan_id/fund", lh.FundLoan, idemp)
	e.POST("/loans/:loan_id/repay", lh.RepayLoan, idemp)
	e.POST("/loans/:loan_id/claim-default", lh.ClaimDefault, idemp)
	e.GET("/loans/:loan_id", lh.GetLoan)

	e.POST("/token/mint", th.Mint, idemp)
	e.POST("/token/transfer", th.Transfer, idemp)
	e.GET("/accounts/:account_id/balances", ah.GetBalances)
	e.POST("/native/deposit", ah.DepositNative, idemp)

	e.GET("/steps", sh.Current)
	e.POST("/steps/advance", sh.Advance, idemp)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
