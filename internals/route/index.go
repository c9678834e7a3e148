// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	busRoutes "schoolbus_backend/internals/features/transport/buses/route"
	"schoolbus_backend/internals/features/transport/buses/service"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, policy service.FeePolicy, log *zap.Logger) {
	startTime = time.Now()

	log.Info("setting up base routes")
	BaseRoutes(app, db)

	api := app.Group("/api")

	log.Info("mounting transport routes", zap.String("calc_version", policy.Info().CalcVersion))
	busRoutes.BusRoutes(api, db, policy, log)
}
