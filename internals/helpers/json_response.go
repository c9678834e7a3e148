// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers
=================================*/

// Dua bentuk body error dipakai berdampingan:
//   - {message}                 → JsonMessage (endpoint assign)
//   - {success: false, message} → JsonError   (CRUD bus & laporan)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func fallbackMessage(status int, message string) (int, string) {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status < 500 {
			message = "Bad Request"
		}
	}
	return status, message
}

// JsonError: {success:false, message}
func JsonError(c *fiber.Ctx, status int, message string) error {
	status, message = fallbackMessage(status, message)
	return c.Status(status).JSON(ErrorResponse{Success: false, Message: message})
}

// JsonMessage: {message}
func JsonMessage(c *fiber.Ctx, status int, message string) error {
	status, message = fallbackMessage(status, message)
	return c.Status(status).JSON(MessageResponse{Message: message})
}

/* ===============================
   Success helpers
=================================*/

// JsonSuccess: {success:true, <key>: data}
func JsonSuccess(c *fiber.Ctx, status int, key string, data any) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		key:       data,
	})
}
