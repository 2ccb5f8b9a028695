package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vehicle-catalog-api/database"
	"vehicle-catalog-api/routes"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	cmd.Flags().String("port", "", "listen port")
	cmd.Flags().String("mode", "", "gin mode: debug, release or test")
	cmd.Flags().String("seed-file", "", "import this seed file before serving")
	cmd.Flags().Bool("migrate", true, "run database migrations on start")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, db, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	logger := utils.Logger()
	defer logger.Sync() //nolint:errcheck

	if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}
	if cfg.Seed.File != "" {
		if _, err := runSeed(db, cfg.Seed.File); err != nil {
			return err
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)
	app := routes.SetupRoutes(db, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	if cfg.Session.CleanupInterval > 0 {
		g.Go(func() error {
			app.Sessions.RunCleanup(gctx, cfg.Session.CleanupInterval, cfg.Session.TTL)
			return nil
		})
	}

	// 收到信号或服务启动失败后关闭
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
