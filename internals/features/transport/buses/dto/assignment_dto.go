// file: internals/features/transport/buses/dto/assignment_dto.go
package dto

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"schoolbus_backend/internals/features/transport/buses/model"
)

// NumericID menerima angka JSON maupun string berisi angka ("12").
// Nilai harus hingga (finite), bulat, dan tidak negatif.
type NumericID uint

func (n *NumericID) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) > 0 && raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return fmt.Errorf("numeric id: %w", err)
		}
		raw = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("numeric id: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f > math.MaxUint32 {
		return fmt.Errorf("numeric id: %q is not a valid id", string(raw))
	}
	*n = NumericID(f)
	return nil
}

type AssignStudentRequest struct {
	StudentID *NumericID `json:"studentId" validate:"required"`
	BusID     *NumericID `json:"busId" validate:"required"`
}

////////////////////////////////////////////////////////////////////////////////
// RESPONSE
////////////////////////////////////////////////////////////////////////////////

type AssignedBus struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Route  string  `json:"route"`
	Plate  string  `json:"plate"`
	Driver *string `json:"driver"`
}

type AssignedStudent struct {
	ID   uint         `json:"id"`
	Name string       `json:"name"`
	Bus  *AssignedBus `json:"bus"`
}

type AssignStudentResponse struct {
	Message       string           `json:"message"`
	PreviousBusID *uint            `json:"previousBusId"`
	AssignedBusID uint             `json:"assignedBusId"`
	Student       *AssignedStudent `json:"student,omitempty"`
}

// ToAssignedStudent: driver null-safe (bus tanpa sopir → driver: null).
func ToAssignedStudent(m model.Student) *AssignedStudent {
	out := &AssignedStudent{ID: m.StudentID, Name: m.StudentFullName}
	if m.Bus != nil {
		b := &AssignedBus{
			ID:    m.Bus.BusID,
			Name:  m.Bus.BusName,
			Route: m.Bus.BusRoute,
			Plate: m.Bus.BusPlate,
		}
		if m.Bus.Driver != nil {
			name := m.Bus.Driver.EmployeeFullName
			b.Driver = &name
		}
		out.Bus = b
	}
	return out
}
