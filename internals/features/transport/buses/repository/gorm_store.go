// file: internals/features/transport/buses/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"schoolbus_backend/internals/features/transport/buses/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

var _ Store = (*GormStore)(nil)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func selectDriverName(db *gorm.DB) *gorm.DB {
	return db.Select("employee_id", "employee_full_name")
}

/* =========================
   Assignment
========================= */

func (s *GormStore) FindStudent(ctx context.Context, id uint) (*model.Student, error) {
	var m model.Student
	err := s.DB.WithContext(ctx).
		Select("student_id", "student_full_name", "student_bus_id").
		First(&m, "student_id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (s *GormStore) FindBus(ctx context.Context, id uint) (*model.Bus, error) {
	var m model.Bus
	err := s.DB.WithContext(ctx).
		Select("bus_id", "bus_name", "bus_route", "bus_plate", "bus_driver_id").
		Preload("Driver", selectDriverName).
		First(&m, "bus_id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// AssignStudentToBus cukup satu UPDATE: student_bus_id ditimpa, bus lama otomatis lepas.
func (s *GormStore) AssignStudentToBus(ctx context.Context, studentID, busID uint) (*model.Student, error) {
	db := s.DB.WithContext(ctx)

	res := db.Model(&model.Student{}).
		Where("student_id = ?", studentID).
		Update("student_bus_id", busID)
	if res.Error != nil {
		return nil, fmt.Errorf("update student bus: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var m model.Student
	if err := db.
		Select("student_id", "student_full_name", "student_bus_id").
		Preload("Bus", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("bus_id", "bus_name", "bus_route", "bus_plate", "bus_driver_id")
		}).
		Preload("Bus.Driver", selectDriverName).
		First(&m, "student_id = ?", studentID).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

/* =========================
   Bus CRUD
========================= */

func (s *GormStore) CreateBus(ctx context.Context, f BusFields) (*model.Bus, error) {
	m := f.toModel()
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create bus: %w", err)
	}
	return &m, nil
}

func (s *GormStore) ListBuses(ctx context.Context) ([]model.Bus, error) {
	var list []model.Bus
	err := s.DB.WithContext(ctx).
		Preload("Driver", selectDriverName).
		Preload("Students", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("student_id", "student_full_name", "student_class_id", "student_bus_id").
				Order("student_id ASC")
		}).
		Order("bus_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	return list, nil
}

func (s *GormStore) GetBus(ctx context.Context, id uint) (*model.Bus, error) {
	var m model.Bus
	err := s.DB.WithContext(ctx).
		Preload("Driver", selectDriverName).
		Preload("Students", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("student_id", "student_full_name", "student_bus_id").
				Order("student_id ASC")
		}).
		First(&m, "bus_id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// UpdateBus menimpa semua kolom bus yang bisa diubah (termasuk yang nil).
// Tidak ada cek eksistensi terpisah; id yang tidak ada → ErrNotFound dari RowsAffected.
func (s *GormStore) UpdateBus(ctx context.Context, id uint, f BusFields) (*model.Bus, error) {
	db := s.DB.WithContext(ctx)

	m := f.toModel()
	m.BusUpdatedAt = time.Now()

	res := db.Model(&model.Bus{}).
		Where("bus_id = ?", id).
		Select(model.BusReplaceableColumns).
		Updates(&m)
	if res.Error != nil {
		return nil, fmt.Errorf("update bus: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var out model.Bus
	if err := db.First(&out, "bus_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (s *GormStore) DeleteBus(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&model.Bus{}, "bus_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete bus: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* =========================
   Finance / employees
========================= */

// ListBusesForFeeReport: bus + driver + siswa aktif + baris student_fees (month, year)
// terurut id DESC + alokasi pembayarannya.
func (s *GormStore) ListBusesForFeeReport(ctx context.Context, month, year int) ([]model.Bus, error) {
	var list []model.Bus
	err := s.DB.WithContext(ctx).
		Preload("Driver").
		Preload("Students", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_is_deleted = ?", false).Order("student_id ASC")
		}).
		Preload("Students.MonthlyFees", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("student_fee_month = ? AND student_fee_year = ?", month, year).
				Order("student_fee_id DESC")
		}).
		Preload("Students.MonthlyFees.Allocations").
		Order("bus_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list buses for fee report: %w", err)
	}
	return list, nil
}

func (s *GormStore) ListUnassignedBusEmployees(ctx context.Context) ([]model.Employee, error) {
	var list []model.Employee
	err := s.DB.WithContext(ctx).
		Where("employee_job_title = ?", model.EmployeeJobTitleBus).
		Where("NOT EXISTS (SELECT 1 FROM buses b WHERE b.bus_driver_id = employees.employee_id)").
		Order("employee_full_name ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list unassigned bus employees: %w", err)
	}
	return list, nil
}

func (f BusFields) toModel() model.Bus {
	return model.Bus{
		BusName:     f.Name,
		BusRoute:    f.Route,
		BusPlate:    f.Plate,
		BusType:     f.Type,
		BusColor:    f.Color,
		BusSeats:    f.Seats,
		BusCapacity: f.Capacity,
		BusDriverID: f.DriverID,
	}
}
