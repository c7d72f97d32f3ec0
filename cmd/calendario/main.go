package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sfvc/calendario-nodo/internal/adapters/discord"
	"github.com/sfvc/calendario-nodo/internal/adapters/httpapi"
	"github.com/sfvc/calendario-nodo/internal/adapters/web"
	"github.com/sfvc/calendario-nodo/internal/application"
	"github.com/sfvc/calendario-nodo/internal/config"
	"github.com/sfvc/calendario-nodo/internal/domain/entities"
	"github.com/sfvc/calendario-nodo/internal/infrastructure/database"
	"github.com/sfvc/calendario-nodo/internal/infrastructure/i18n"
	"github.com/sfvc/calendario-nodo/internal/ports/output"
	"github.com/sfvc/calendario-nodo/pkg/token"
)

func main() {
	app := &cli.App{
		Name:  "calendario",
		Usage: "Calendario de eventos del Nodo Tecnológico",
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Levanta el API REST",
				Action: runAPI,
			},
			{
				Name:   "web",
				Usage:  "Levanta la aplicación web",
				Action: runWeb,
			},
			{
				Name:  "migrate",
				Usage: "Aplica las migraciones pendientes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Value: "migrations",
						Usage: "directorio con las migraciones",
					},
				},
				Action: runMigrate,
			},
			{
				Name:      "create-user",
				Usage:     "Crea un usuario directamente en la base",
				ArgsUsage: "<email> <password> [ADMIN|USER]",
				Action:    runCreateUser,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func runAPI(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := c.Context
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	var announcer output.EventAnnouncer
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		a, err := discord.NewAnnouncer(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			return fmt.Errorf("discord: %w", err)
		}
		announcer = a
		log.Println("📣 Anuncios de eventos en Discord habilitados.")
	}

	eventRepo := database.NewEventRepository(pool)
	estadoRepo := database.NewEstadoRepository(pool)
	userRepo := database.NewUserRepository(pool)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	uploads, err := httpapi.NewUploads(cfg.UploadsDir)
	if err != nil {
		return err
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Events:  application.NewEventService(eventRepo, estadoRepo, announcer, cfg.EditPolicy),
		Estados: application.NewEstadoService(estadoRepo),
		Users:   application.NewUserService(userRepo),
		Auth:    application.NewAuthService(userRepo, tokens),
	}, uploads, httpapi.NewMetrics(), nil, log.Default())

	return serve(ctx, cfg.APIAddr, handler, "API")
}

func runWeb(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tr := i18n.NewTranslator(cfg.Locale)
	server := web.NewServer(cfg, tr)

	return serve(c.Context, cfg.WebAddr, server.Handler(), "web")
}

func runMigrate(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := database.RunMigrations(cfg.DatabaseURL, c.String("path")); err != nil {
		return err
	}
	log.Println("✅ Migraciones aplicadas.")
	return nil
}

func runCreateUser(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("uso: create-user <email> <password> [ADMIN|USER]")
	}
	email, password := c.Args().Get(0), c.Args().Get(1)
	role := entities.Role(c.Args().Get(2))
	if role == "" {
		role = entities.RoleUser
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pool, err := database.NewPool(c.Context, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	users := application.NewUserService(database.NewUserRepository(pool))
	user, err := users.CreateUser(c.Context, email, password, role)
	if err != nil {
		return err
	}
	log.Printf("✅ Usuario %s creado (%s).", user.Email, user.Role)
	return nil
}

// serve runs the HTTP server until the context is canceled or an interrupt
// arrives, then shuts down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler, name string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Servidor %s escuchando en %s", name, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("🛑 Apagando servidor %s...", name)
	return srv.Shutdown(shutdownCtx)
}
