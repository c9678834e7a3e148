// file: internals/features/transport/buses/model/student_model.go
package model

type Student struct {
	StudentID        uint    `gorm:"column:student_id;primaryKey;autoIncrement" json:"student_id"`
	StudentFullName  string  `gorm:"column:student_full_name;type:varchar(150);not null" json:"student_full_name"`
	StudentDistrict  *string `gorm:"column:student_district;type:varchar(120)" json:"student_district,omitempty"`
	StudentClassID   *uint   `gorm:"column:student_class_id;index" json:"student_class_id,omitempty"`
	StudentIsDeleted bool    `gorm:"column:student_is_deleted;not null;default:false;index" json:"student_is_deleted"`

	// Nominal monthly fee; fallback kalau tidak ada baris student_fees bulan itu.
	StudentFee *float64 `gorm:"column:student_fee;type:numeric(12,2)" json:"student_fee,omitempty"`

	// FK → buses(bus_id). Satu siswa maksimal di satu bus; reassign cukup overwrite kolom ini.
	StudentBusID *uint `gorm:"column:student_bus_id;index" json:"student_bus_id,omitempty"`
	Bus          *Bus  `gorm:"foreignKey:StudentBusID;references:BusID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"bus,omitempty"`

	MonthlyFees []StudentFee `gorm:"foreignKey:StudentFeeStudentID;references:StudentID" json:"monthly_fees,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
