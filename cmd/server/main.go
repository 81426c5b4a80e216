package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mwrona/restaurant-server/internal/booking"
	"github.com/mwrona/restaurant-server/internal/config"
	"github.com/mwrona/restaurant-server/internal/database"
	"github.com/mwrona/restaurant-server/internal/handler"
	"github.com/mwrona/restaurant-server/internal/notification"
	"github.com/mwrona/restaurant-server/internal/queue"
	"github.com/mwrona/restaurant-server/internal/repository"
	"github.com/mwrona/restaurant-server/internal/router"
	"github.com/mwrona/restaurant-server/internal/service"
)

func main() {
	// .env is optional; real deployments set variables in the environment
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade
	if rdb == nil {
		log.Printf("redis unavailable, response cache and rate limiting disabled")
	}

	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	menu := repository.NewMenuRepo(db)
	news := repository.NewNewsRepo(db)
	testimonials := repository.NewTestimonialRepo(db)

	engine := booking.NewEngine(tables, reservations, cfg.ReservationHours)
	publisher := queue.NewPublisher(cfg.AMQPURL)
	mailer := notification.NewMailer(cfg.SMTP)
	reservationSvc := service.NewReservationService(engine, reservations, users, publisher)

	// mail worker consumes the reservation queues for the whole process
	go queue.StartMailConsumer(cfg.AMQPURL, mailer)

	authH := handler.NewAuthHandler(cfg, users, tokens, mailer)
	reservationH := handler.NewReservationHandler(reservationSvc)
	menuH := handler.NewMenuHandler(menu)
	newsH := handler.NewNewsHandler(news)
	testimonialH := handler.NewTestimonialHandler(testimonials)
	tableH := handler.NewTableHandler(tables)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, menuH, newsH, testimonialH, tableH, config.LoadCacheConfig(), rdb)
	router.RegisterReservations(e, reservationH, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)
	router.RegisterComments(e, newsH, cfg.JWTSecret)
	router.RegisterAdmin(e, reservationH, menuH, newsH, testimonialH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
