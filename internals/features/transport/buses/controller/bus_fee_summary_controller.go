// file: internals/features/transport/buses/controller/bus_fee_summary_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"schoolbus_backend/internals/features/transport/buses/dto"
	helper "schoolbus_backend/internals/helpers"
)

// -----------------------------------------
// Bus fee vs driver salary (GET /finance/detailed-v2?month=9&year=2025[&debug=1])
// -----------------------------------------
func (h *BusHandler) BusFeeSummaryV2(c *fiber.Ctx) error {
	var q dto.FeeSummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Month and year must be provided as query parameters.")
	}
	if err := h.Validate.Struct(q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Month and year must be provided as query parameters.")
	}

	c.Set(HeaderCalcVersion, h.Reports.CalcVersion())

	res, err := h.Reports.Summary(c.UserContext(), q.Month, q.Year, q.IsDebug())
	if err != nil {
		h.logError(c, "error building bus fee summary", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load bus fee and salary summary.")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
