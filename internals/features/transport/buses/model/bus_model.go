// file: internals/features/transport/buses/model/bus_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

type Bus struct {
	BusID       uint    `gorm:"column:bus_id;primaryKey;autoIncrement" json:"bus_id"`
	BusName     string  `gorm:"column:bus_name;type:varchar(120)" json:"bus_name"`
	BusRoute    string  `gorm:"column:bus_route;type:varchar(200)" json:"bus_route"`
	BusPlate    string  `gorm:"column:bus_plate;type:varchar(30)" json:"bus_plate"`
	BusType     *string `gorm:"column:bus_type;type:varchar(60)" json:"bus_type,omitempty"`
	BusColor    *string `gorm:"column:bus_color;type:varchar(40)" json:"bus_color,omitempty"`
	BusSeats    *int    `gorm:"column:bus_seats" json:"bus_seats,omitempty"`
	BusCapacity *int    `gorm:"column:bus_capacity" json:"bus_capacity,omitempty"`

	// FK → employees(employee_id), nullable
	BusDriverID *uint     `gorm:"column:bus_driver_id;index" json:"bus_driver_id,omitempty"`
	Driver      *Employee `gorm:"foreignKey:BusDriverID;references:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"driver,omitempty"`

	// reverse: students(student_bus_id)
	Students []Student `gorm:"foreignKey:StudentBusID;references:BusID" json:"students,omitempty"`

	BusCreatedAt time.Time `gorm:"column:bus_created_at;not null;default:now()" json:"bus_created_at"`
	BusUpdatedAt time.Time `gorm:"column:bus_updated_at;not null;default:now()" json:"bus_updated_at"`
}

func (Bus) TableName() string {
	return "buses"
}

// Kolom yang ditimpa penuh saat update (PUT).
var BusReplaceableColumns = []string{
	"bus_name",
	"bus_route",
	"bus_plate",
	"bus_type",
	"bus_color",
	"bus_seats",
	"bus_capacity",
	"bus_driver_id",
	"bus_updated_at",
}

func (m *Bus) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.BusCreatedAt.IsZero() {
		m.BusCreatedAt = now
	}
	m.BusUpdatedAt = now
	return nil
}
