// file: internals/features/transport/buses/repository/store.go
package repository

import (
	"context"
	"errors"

	"schoolbus_backend/internals/features/transport/buses/model"
)

// ErrNotFound dikembalikan kalau baris yang diminta tidak ada.
var ErrNotFound = errors.New("record not found")

// BusFields = kolom bus yang bisa di-set saat create / replace.
type BusFields struct {
	Name     string
	Route    string
	Plate    string
	Type     *string
	Color    *string
	Seats    *int
	Capacity *int
	DriverID *uint
}

// Store adalah akses data yang dipakai handler & service bus.
type Store interface {
	FindStudent(ctx context.Context, id uint) (*model.Student, error)
	FindBus(ctx context.Context, id uint) (*model.Bus, error)
	AssignStudentToBus(ctx context.Context, studentID, busID uint) (*model.Student, error)

	CreateBus(ctx context.Context, f BusFields) (*model.Bus, error)
	ListBuses(ctx context.Context) ([]model.Bus, error)
	GetBus(ctx context.Context, id uint) (*model.Bus, error)
	UpdateBus(ctx context.Context, id uint, f BusFields) (*model.Bus, error)
	DeleteBus(ctx context.Context, id uint) error

	ListBusesForFeeReport(ctx context.Context, month, year int) ([]model.Bus, error)
	ListUnassignedBusEmployees(ctx context.Context) ([]model.Employee, error)
}
