// file: internals/features/transport/buses/model/student_fee_model.go
package model

import "time"

// StudentFee = tagihan bulanan siswa untuk satu (month, year).
// Diisi oleh modul billing; di sini hanya dibaca.
type StudentFee struct {
	StudentFeeID        uint `gorm:"column:student_fee_id;primaryKey;autoIncrement" json:"student_fee_id"`
	StudentFeeStudentID uint `gorm:"column:student_fee_student_id;not null;index:ix_student_fee_period,priority:1" json:"student_fee_student_id"`
	StudentFeeMonth     int  `gorm:"column:student_fee_month;not null;index:ix_student_fee_period,priority:2" json:"student_fee_month"`
	StudentFeeYear      int  `gorm:"column:student_fee_year;not null;index:ix_student_fee_period,priority:3" json:"student_fee_year"`

	// nil = tidak override; pakai students.student_fee
	StudentFeeAmount *float64 `gorm:"column:student_fee_amount;type:numeric(12,2)" json:"student_fee_amount,omitempty"`

	Allocations []PaymentAllocation `gorm:"foreignKey:PaymentAllocationStudentFeeID;references:StudentFeeID" json:"allocations,omitempty"`

	StudentFeeCreatedAt time.Time `gorm:"column:student_fee_created_at;not null;autoCreateTime" json:"student_fee_created_at"`
}

func (StudentFee) TableName() string {
	return "student_fees"
}

type PaymentAllocation struct {
	PaymentAllocationID           uint    `gorm:"column:payment_allocation_id;primaryKey;autoIncrement" json:"payment_allocation_id"`
	PaymentAllocationPaymentID    uint    `gorm:"column:payment_allocation_payment_id;not null;index" json:"payment_allocation_payment_id"`
	PaymentAllocationStudentFeeID uint    `gorm:"column:payment_allocation_student_fee_id;not null;index" json:"payment_allocation_student_fee_id"`
	PaymentAllocationAmount       float64 `gorm:"column:payment_allocation_amount;type:numeric(12,2);not null;default:0" json:"payment_allocation_amount"`

	PaymentAllocationCreatedAt time.Time `gorm:"column:payment_allocation_created_at;not null;autoCreateTime" json:"payment_allocation_created_at"`
}

func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}
