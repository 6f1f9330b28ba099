package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"pt.arrendado.flatfinder/internal/auth"
	"pt.arrendado.flatfinder/internal/boot"
	"pt.arrendado.flatfinder/internal/handlers"
	"pt.arrendado.flatfinder/internal/hub"
	flatservice "pt.arrendado.flatfinder/internal/service/flat"
	messageservice "pt.arrendado.flatfinder/internal/service/message"
	userservice "pt.arrendado.flatfinder/internal/service/user"
	"pt.arrendado.flatfinder/internal/store"
)

type requestValidator struct {
	validator *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	db, err := store.Open(config)
	if err != nil {
		log.Fatalf("opening store: %+v", err)
	}
	defer db.Close()

	tokens := auth.NewTokens(config)
	notifier := hub.New()

	users := userservice.New(db)
	flats := flatservice.New(db)
	messages := messageservice.New(db, notifier)

	server := echo.New()
	server.Validator = &requestValidator{validator.New()}
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("flatfinder"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.Server.Origins,
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	authed := auth.Middleware(tokens)

	server.POST("/users/register", handlers.Register(users))
	server.POST("/users/login", handlers.Login(users, tokens))
	server.GET("/users/messages", handlers.UserMessages(messages), authed)
	server.GET("/users/favorites", handlers.Favourites(users), authed)
	server.PATCH("/users/favorites/:flatId", handlers.ToggleFavourite(users), authed)

	server.GET("/flats", handlers.ListFlats(flats))
	server.POST("/flats", handlers.CreateFlat(flats), authed)
	server.GET("/flats/:id", handlers.GetFlat(flats))
	server.PATCH("/flats/:id", handlers.UpdateFlat(flats), authed)
	server.DELETE("/flats/:id", handlers.DeleteFlat(flats), authed)

	server.GET("/flats/:id/messages", handlers.ListMessages(messages))
	server.POST("/flats/:id/messages", handlers.PostMessage(messages), authed)
	server.PATCH("/flats/:id/messages/read", handlers.MarkMessagesRead(messages))
	server.GET("/flats/:id/conversation", handlers.Conversation(messages), authed)

	server.GET("/ws", notifier.Handler())

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
