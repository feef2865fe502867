package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "investorhub/internal/adapter/http"
	"investorhub/internal/adapter/middleware"
	"investorhub/internal/adapter/repository/mysql"
	"investorhub/internal/config"
	"investorhub/internal/infrastructure/cache"
	"investorhub/internal/infrastructure/db"
	"investorhub/internal/mifosx"
	"investorhub/internal/renderer"
	"investorhub/internal/scheduler"
	adminuc "investorhub/internal/usecase/admin"
	authuc "investorhub/internal/usecase/auth"
	pooluc "investorhub/internal/usecase/pool"
	portfoliouc "investorhub/internal/usecase/portfolio"
	syncuc "investorhub/internal/usecase/sync"
	waterfalluc "investorhub/internal/usecase/waterfall"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories
	users := mysql.NewUserRepository(gdb)
	investments := mysql.NewInvestmentRepository(gdb)
	documents := mysql.NewDocumentRepository(gdb)
	waterfalls := mysql.NewWaterfallRepository(gdb)
	pools := mysql.NewPoolRepository(gdb)
	mifosLoans := mysql.NewMifosLoanRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// collaborators
	sessions := cache.NewRedisSessionStore(rdb)
	render := renderer.NewScriptRenderer(cfg.Renderer.Python, cfg.Renderer.ScriptDir)
	mifosClient := mifosx.NewClient(
		cfg.Mifos.BaseURL, cfg.Mifos.Username, cfg.Mifos.Password, cfg.Mifos.Tenant,
		time.Duration(cfg.Mifos.CacheTTLSecs)*time.Second,
	)

	// usecases
	auth := authuc.NewUsecase(users, sessions, time.Duration(cfg.SessionTTLSecs)*time.Second)
	waterfall := waterfalluc.NewUsecase(waterfalls, uow)
	pool := pooluc.NewUsecase(pools, mifosLoans, uow)
	portfolio := portfoliouc.NewUsecase(users, investments, documents, render)
	admin := adminuc.NewUsecase(users, investments, documents, render, cfg.FileDir)
	sync := syncuc.NewUsecase(mifosClient, mifosLoans)

	// background sync
	ctx := context.Background()
	sched := scheduler.New(ctx, sync)
	if cfg.Mifos.BaseURL != "" {
		if err := sched.RegisterSync(cfg.Mifos.SyncCron); err != nil {
			log.Fatal(err)
		}
		sched.Start()
		defer sched.Stop()
		if cfg.Mifos.SyncOnStartup {
			go func() {
				if err := sync.Run(ctx); err != nil {
					log.Printf("[ERROR] startup sync: %v", err)
				}
			}()
		}
	} else {
		log.Println("[WARN] MIFOS_BASE_URL unset, loan sync disabled")
	}

	// handlers
	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(auth)
	waterfallH := httpadp.NewWaterfallHandler(waterfall)
	poolH := httpadp.NewPoolHandler(pool)
	portfolioH := httpadp.NewPortfolioHandler(portfolio)
	adminH := httpadp.NewAdminHandler(admin, sync, cfg.FileDir)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.POST("/auth/login", authH.Login)
	e.POST("/auth/logout", authH.Logout)

	// investor surface
	me := e.Group("/me", middleware.Session(auth))
	me.GET("/dashboard", portfolioH.Dashboard)
	me.GET("/statement", portfolioH.Statement)
	me.GET("/documents/:id", portfolioH.DownloadDocument)

	// admin surface
	adm := e.Group("/admin", middleware.Session(auth), middleware.RequireAdmin)
	adm.POST("/investors", adminH.CreateInvestor)
	adm.GET("/investors", adminH.ListInvestors)
	adm.DELETE("/investors/:id", adminH.DeleteInvestor)

	adm.POST("/investments", adminH.CreateInvestment)
	adm.GET("/investments", adminH.ListInvestments)
	adm.POST("/investments/:id/close", adminH.CloseInvestment)
	adm.DELETE("/investments/:id", adminH.DeleteInvestment)
	adm.POST("/agreements", adminH.SignAgreement)

	adm.POST("/payouts", adminH.CreatePayout)
	adm.DELETE("/payouts/:id", adminH.DeletePayout)

	adm.POST("/documents", adminH.UploadDocument)
	adm.GET("/documents", adminH.ListDocuments)
	adm.DELETE("/documents/:id", adminH.DeleteDocument)

	adm.GET("/waterfall/config", waterfallH.GetConfig)
	adm.PUT("/waterfall/config", waterfallH.SetConfig)
	adm.POST("/waterfall/distributions", waterfallH.Distribute)
	adm.GET("/waterfall/distributions", waterfallH.ListDistributions)

	adm.POST("/pools", poolH.Create)
	adm.GET("/pools", poolH.List)
	adm.GET("/pools/:id", poolH.Get)
	adm.POST("/pools/:id/transition", poolH.Transition)
	adm.DELETE("/pools/:id", poolH.Delete)
	adm.POST("/pools/:id/loans", poolH.AddLoan)
	adm.DELETE("/pools/:id/loans/:loan_id", poolH.RemoveLoan)
	adm.GET("/pools/:id/available-loans", poolH.AvailableLoans)

	adm.POST("/sync/run", adminH.TriggerSync)
	adm.GET("/sync/status", adminH.SyncStatus)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
