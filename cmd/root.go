package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"commissary/internal/core/container"
	"commissary/internal/core/routes"
	"commissary/internal/database"
	"commissary/internal/database/migration"
	"commissary/internal/logger"
	"commissary/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the inventory API server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()
		defer log.Sync()

		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}

		migrationDir, _ := cmd.Flags().GetString("migrations")
		if err := migration.Migrate(dbURL, fmt.Sprintf("file://%s", migrationDir), log); err != nil {
			middleware.UpdateHealthStatus("degraded")
			return fmt.Errorf("migrate database: %w", err)
		}

		db, err := database.NewPostgresConnection(dbURL)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("Connected to the database")

		app := container.NewAppContainer(db, []byte(jwtSecret), log)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		app.Tracker.StartSweeper(ctx, sweepInterval())

		limiter := routes.NewLoginLimiter()
		limiter.StartCleanup(ctx, time.Minute)

		router := gin.New()
		router.Use(gin.Logger())
		router.Use(middleware.RecoveryMiddleware(log))
		router.Use(middleware.RequestIDMiddleware())

		routes.RegisterUtilityRoutes(router)
		routes.RegisterPublicRoutes(router, app, limiter)
		routes.RegisterProtectedRoutes(router, app, []byte(jwtSecret))

		host := os.Getenv("APP_HOST")
		if host == "" {
			host = ":8080"
		}

		log.Info("Starting server", zap.String("host", host))
		return router.Run(host)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies any pending schema migrations and exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationDir, _ := cmd.Flags().GetString("migrations")

		if err := migration.Migrate(dbURL, fmt.Sprintf("file://%s", migrationDir), logger.NewLogger()); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		return nil
	},
}

func sweepInterval() time.Duration {
	if raw := os.Getenv("RESERVATION_SWEEP_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 30 * time.Second
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "commissary",
		Short: "Commissary inventory service",
	}

	for _, c := range []*cobra.Command{serveCmd, migrateCmd, seedCmd} {
		c.Flags().String("migrations", "./migrations", "Directory containing the migration files")
		rootCmd.AddCommand(c)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
