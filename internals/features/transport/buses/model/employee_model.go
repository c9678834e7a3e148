// file: internals/features/transport/buses/model/employee_model.go
package model

import "time"

// Job title yang menandai karyawan sebagai sopir bus.
const EmployeeJobTitleBus = "Bus"

type Employee struct {
	EmployeeID       uint    `gorm:"column:employee_id;primaryKey;autoIncrement" json:"employee_id"`
	EmployeeFullName string  `gorm:"column:employee_full_name;type:varchar(150);not null;index" json:"employee_full_name"`
	EmployeeJobTitle string  `gorm:"column:employee_job_title;type:varchar(60);index" json:"employee_job_title"`
	EmployeeSalary   float64 `gorm:"column:employee_salary;type:numeric(12,2);not null;default:0" json:"employee_salary"`

	EmployeeCreatedAt time.Time `gorm:"column:employee_created_at;not null;autoCreateTime" json:"employee_created_at"`
	EmployeeUpdatedAt time.Time `gorm:"column:employee_updated_at;not null;autoUpdateTime" json:"employee_updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
