package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/classroom-seating/internal/config"
	"github.com/iliyamo/classroom-seating/internal/database"
	"github.com/iliyamo/classroom-seating/internal/handler"
	"github.com/iliyamo/classroom-seating/internal/middleware"
	"github.com/iliyamo/classroom-seating/internal/queue"
	"github.com/iliyamo/classroom-seating/internal/repository"
	"github.com/iliyamo/classroom-seating/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	ruleRepo := repository.NewRuleRepo(db)
	chartRepo := repository.NewChartRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	teacherH := handler.NewTeacherHandler(cfg, roomRepo, seatRepo, studentRepo, ruleRepo, chartRepo)
	publicH := handler.NewPublicHandler(roomRepo, seatRepo, studentRepo, chartRepo)

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiters degrade to pass-through
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterTeacher(e, teacherH, cfg.JWTSecret, limiter)
	router.RegisterPublic(e, publicH, cache)

	// Roster sync runs for the lifetime of the process and reconnects
	// on broker failures by itself.
	go func() {
		consumer := queue.NewRosterConsumer(studentRepo, ruleRepo, chartRepo)
		if err := consumer.Start(); err != nil {
			log.Printf("roster consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
