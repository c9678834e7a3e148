// file: internals/features/transport/buses/controller/bus_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schoolbus_backend/internals/features/transport/buses/dto"
	"schoolbus_backend/internals/features/transport/buses/repository"
	"schoolbus_backend/internals/features/transport/buses/service"
	helper "schoolbus_backend/internals/helpers"
)

const HeaderCalcVersion = "x-calc-version"

type BusHandler struct {
	Store    repository.Store
	Assigner *service.AssignmentService
	Reports  *service.FeeReportService
	Validate *validator.Validate
	Log      *zap.Logger
}

func NewBusHandler(store repository.Store, policy service.FeePolicy, log *zap.Logger) *BusHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BusHandler{
		Store:    store,
		Assigner: service.NewAssignmentService(store),
		Reports:  service.NewFeeReportService(store, policy),
		Validate: validator.New(),
		Log:      log.Named("buses"),
	}
}

// logError mencatat error asli; ke client hanya dikirim pesan generik.
func (h *BusHandler) logError(c *fiber.Ctx, msg string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
	}
	if id, ok := c.Locals("reqid").(string); ok && id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if pe, ok := repository.AsPGError(err); ok {
		fields = append(fields, zap.String("pg_code", pe.Code), zap.String("pg_constraint", pe.Constraint))
	}
	h.Log.Error(msg, fields...)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// -----------------------------------------
// Assign (POST /assign)
// body: {studentId, busId}
// -----------------------------------------
func (h *BusHandler) AssignStudentToBus(c *fiber.Ctx) error {
	var in dto.AssignStudentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonMessage(c, fiber.StatusBadRequest, "studentId and busId are required (numbers).")
	}
	if err := h.Validate.Struct(in); err != nil {
		return helper.JsonMessage(c, fiber.StatusBadRequest, "studentId and busId are required (numbers).")
	}

	res, err := h.Assigner.Assign(c.UserContext(), uint(*in.StudentID), uint(*in.BusID))
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonMessage(c, fiber.StatusNotFound, "Student not found.")
	case errors.Is(err, service.ErrBusNotFound):
		return helper.JsonMessage(c, fiber.StatusNotFound, "Bus not found.")
	case err != nil:
		h.logError(c, "error assigning student to bus", err)
		return helper.JsonMessage(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// -----------------------------------------
// Create (POST /)
// -----------------------------------------
func (h *BusHandler) CreateBus(c *fiber.Ctx) error {
	var in dto.BusUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := h.Store.CreateBus(c.UserContext(), in.ToFields())
	if err != nil {
		h.logError(c, "error creating bus", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create bus")
	}
	return helper.JsonSuccess(c, fiber.StatusCreated, "bus", dto.ToBusResponse(*m))
}

// -----------------------------------------
// List (GET /)
// -----------------------------------------
func (h *BusHandler) ListBuses(c *fiber.Ctx) error {
	list, err := h.Store.ListBuses(c.UserContext())
	if err != nil {
		h.logError(c, "error fetching buses", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch buses")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, "buses", dto.ToBusDetailResponses(list))
}

// -----------------------------------------
// Detail (GET /:id)
// -----------------------------------------
func (h *BusHandler) GetBus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus id")
	}

	m, err := h.Store.GetBus(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return helper.JsonMessage(c, fiber.StatusNotFound, "Bus not found")
	}
	if err != nil {
		h.logError(c, "error fetching bus", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bus")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, "bus", dto.ToBusDetailResponse(*m, false))
}

// -----------------------------------------
// Replace (PUT /:id)
// Tidak ada cek eksistensi; id yang tidak ada berakhir sebagai 500.
// -----------------------------------------
func (h *BusHandler) UpdateBus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus id")
	}
	var in dto.BusUpsertRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := h.Store.UpdateBus(c.UserContext(), id, in.ToFields())
	if err != nil {
		h.logError(c, "error updating bus", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update bus")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, "bus", dto.ToBusResponse(*m))
}

// -----------------------------------------
// Delete (DELETE /:id)
// -----------------------------------------
func (h *BusHandler) DeleteBus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid bus id")
	}

	if err := h.Store.DeleteBus(c.UserContext(), id); err != nil {
		h.logError(c, "error deleting bus", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete bus")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Bus deleted successfully",
	})
}

// -----------------------------------------
// Unused bus drivers (GET /employees/unassigned)
// -----------------------------------------
func (h *BusHandler) ListUnassignedBusEmployees(c *fiber.Ctx) error {
	list, err := h.Store.ListUnassignedBusEmployees(c.UserContext())
	if err != nil {
		h.logError(c, "error fetching unused bus employees", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonSuccess(c, fiber.StatusOK, "employees", dto.ToEmployeeResponses(list))
}
