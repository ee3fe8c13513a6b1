package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	apiv1 "techscreen-backend/controllers/v1"
	"techscreen-backend/fiberlog"
	"techscreen-backend/initializers"
	staleworker "techscreen-backend/lib/generation-log/stale-worker"
	"techscreen-backend/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		services, err := initializers.InitAllServices(ctx, conf)
		if err != nil {
			return err
		}

		if conf.Generation.StaleLogMinutes > 0 && conf.Generation.StaleCheckMinutes > 0 {
			staleworker.StartWorker(ctx, services.InterviewAPI.Logs,
				time.Duration(conf.Generation.StaleLogMinutes)*time.Minute,
				time.Duration(conf.Generation.StaleCheckMinutes)*time.Minute)
		}

		app := fiber.New(fiber.Config{
			BodyLimit: conf.App.BodyLimit,
		})
		app.Use(fiberRecover.New())

		if _, statErr := os.Stat(conf.App.SwaggerFile); statErr == nil {
			app.Use(swagger.New(swagger.Config{
				Path:     "/swagger",
				FilePath: conf.App.SwaggerFile,
			}))
		} else {
			log.WithField("file", conf.App.SwaggerFile).Info("swagger file not found, docs disabled")
		}

		apiV1 := fiber.New()
		apiV1.Use(fiberlog.New(*services.LoggerConfig))
		apiV1.Use(cors.New(cors.Config{
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET, POST, PATCH, DELETE, PUT",
		}))
		apiV1.Use(middleware.WithBodyLimit(int64(conf.App.BodyLimit)))
		apiV1.Use(middleware.ErrNotify(services.Mailer, conf.Smtp.NotifyEmail))
		app.Mount("/api/v1", apiV1)
		apiv1.InitInterviewApiRouters(apiV1, services.InterviewAPI)

		// gracefully shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		wg := sync.WaitGroup{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case <-c:
			case <-ctx.Done():
				return
			}
			log.Info("Gracefully shutting down...")
			cancel()
			if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
				log.WithError(err).Error("Error when try gracefully shutting down")
			}
			log.Info("Gracefully shutting down finished")
		}()

		addr := fmt.Sprintf("%s:%d", conf.App.ListenAddr, conf.App.Port)
		if err = app.Listen(addr); err != nil {
			cancel()
			wg.Wait()
			return err
		}
		cancel()
		wg.Wait()
		if sqlDB, dbErr := services.DB.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		log.Info("HTTP server successfully stopped")
		return nil
	},
}
