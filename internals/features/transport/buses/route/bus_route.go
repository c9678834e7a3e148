// file: internals/features/transport/buses/route/bus_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	busapi "schoolbus_backend/internals/features/transport/buses/controller"
	"schoolbus_backend/internals/features/transport/buses/repository"
	"schoolbus_backend/internals/features/transport/buses/service"
)

// BusRoutes memasang endpoint bus di bawah /buses.
func BusRoutes(api fiber.Router, db *gorm.DB, policy service.FeePolicy, log *zap.Logger) {
	h := busapi.NewBusHandler(repository.NewGormStore(db), policy, log)
	MountBusRoutes(api, h)
}

// MountBusRoutes dipisah supaya handler dengan store lain (test) bisa dipasang.
func MountBusRoutes(api fiber.Router, h *busapi.BusHandler) {
	grp := api.Group("/buses")

	// ---- static paths dulu, sebelum /:id
	grp.Post("/assign", h.AssignStudentToBus)
	grp.Get("/employees/unassigned", h.ListUnassignedBusEmployees)
	grp.Get("/finance/detailed-v2", h.BusFeeSummaryV2)

	// ---- CRUD
	grp.Post("/", h.CreateBus)
	grp.Get("/", h.ListBuses)
	grp.Get("/:id", h.GetBus)
	grp.Put("/:id", h.UpdateBus)
	grp.Delete("/:id", h.DeleteBus)
}
