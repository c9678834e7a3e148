// file: internals/features/transport/buses/dto/bus_dto.go
package dto

import (
	"time"

	"schoolbus_backend/internals/features/transport/buses/model"
	"schoolbus_backend/internals/features/transport/buses/repository"
)

////////////////////////////////////////////////////////////////////////////////
// BUS: REQUEST
////////////////////////////////////////////////////////////////////////////////

// Dipakai untuk create (POST) maupun replace (PUT). Tidak ada validasi referensial
// driverId di sini; itu urusan FK di database.
type BusUpsertRequest struct {
	Name     *string `json:"name"`
	Route    *string `json:"route"`
	Plate    *string `json:"plate"`
	Type     *string `json:"type"`
	Color    *string `json:"color"`
	Seats    *int    `json:"seats"`
	Capacity *int    `json:"capacity"`
	DriverID *uint   `json:"driverId"`
}

func (r BusUpsertRequest) ToFields() repository.BusFields {
	return repository.BusFields{
		Name:     deref(r.Name),
		Route:    deref(r.Route),
		Plate:    deref(r.Plate),
		Type:     r.Type,
		Color:    r.Color,
		Seats:    r.Seats,
		Capacity: r.Capacity,
		DriverID: r.DriverID,
	}
}

////////////////////////////////////////////////////////////////////////////////
// BUS: RESPONSE
////////////////////////////////////////////////////////////////////////////////

type BusResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Route     string    `json:"route"`
	Plate     string    `json:"plate"`
	Type      *string   `json:"type"`
	Color     *string   `json:"color"`
	Seats     *int      `json:"seats"`
	Capacity  *int      `json:"capacity"`
	DriverID  *uint     `json:"driverId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BusDriverBrief struct {
	FullName string `json:"fullName"`
}

type BusStudentBrief struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	ClassID *uint  `json:"classId,omitempty"`
}

type BusDetailResponse struct {
	BusResponse
	Driver   *BusDriverBrief   `json:"driver"`
	Students []BusStudentBrief `json:"students"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func ToBusResponse(m model.Bus) BusResponse {
	return BusResponse{
		ID:        m.BusID,
		Name:      m.BusName,
		Route:     m.BusRoute,
		Plate:     m.BusPlate,
		Type:      m.BusType,
		Color:     m.BusColor,
		Seats:     m.BusSeats,
		Capacity:  m.BusCapacity,
		DriverID:  m.BusDriverID,
		CreatedAt: m.BusCreatedAt,
		UpdatedAt: m.BusUpdatedAt,
	}
}

// withClass=false untuk detail (GET /:id) yang hanya memuat id & nama siswa.
func ToBusDetailResponse(m model.Bus, withClass bool) BusDetailResponse {
	out := BusDetailResponse{
		BusResponse: ToBusResponse(m),
		Students:    make([]BusStudentBrief, 0, len(m.Students)),
	}
	if m.Driver != nil {
		out.Driver = &BusDriverBrief{FullName: m.Driver.EmployeeFullName}
	}
	for _, s := range m.Students {
		b := BusStudentBrief{ID: s.StudentID, Name: s.StudentFullName}
		if withClass {
			b.ClassID = s.StudentClassID
		}
		out.Students = append(out.Students, b)
	}
	return out
}

func ToBusDetailResponses(list []model.Bus) []BusDetailResponse {
	out := make([]BusDetailResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToBusDetailResponse(m, true))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
