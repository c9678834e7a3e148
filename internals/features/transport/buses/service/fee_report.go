// file: internals/features/transport/buses/service/fee_report.go
package service

import (
	"github.com/shopspring/decimal"

	"schoolbus_backend/internals/features/transport/buses/dto"
	"schoolbus_backend/internals/features/transport/buses/model"
)

const unknownDistrict = "Unknown"

func periodRows(rows []model.StudentFee, month, year int) []model.StudentFee {
	out := make([]model.StudentFee, 0, len(rows))
	for _, r := range rows {
		if r.StudentFeeMonth == month && r.StudentFeeYear == year {
			out = append(out, r)
		}
	}
	return out
}

// ResolveTotalFee: student_fee dari baris (month, year) dengan id terbesar yang tidak null,
// kalau tidak ada pakai fee profil siswa, kalau itu juga kosong 0.
func ResolveTotalFee(s model.Student, month, year int) float64 {
	var best *model.StudentFee
	rows := periodRows(s.MonthlyFees, month, year)
	for i := range rows {
		r := &rows[i]
		if r.StudentFeeAmount == nil {
			continue
		}
		if best == nil || r.StudentFeeID > best.StudentFeeID {
			best = r
		}
	}
	switch {
	case best != nil:
		return R2(*best.StudentFeeAmount)
	case s.StudentFee != nil:
		return R2(*s.StudentFee)
	default:
		return 0
	}
}

// SumCollected menjumlah alokasi pembayaran dari SEMUA baris (month, year) siswa,
// termasuk baris duplikat yang bukan sumber total fee.
func SumCollected(s model.Student, month, year int) float64 {
	sum := decimal.Zero
	for _, r := range periodRows(s.MonthlyFees, month, year) {
		for _, a := range r.Allocations {
			sum = sum.Add(decimal.NewFromFloat(a.PaymentAllocationAmount))
		}
	}
	return R2(sum.InexactFloat64())
}

func cents(x float64) decimal.Decimal {
	return decimal.NewFromFloat(R2(x))
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// BuildFeeSummary menyusun laporan bus fee vs gaji sopir untuk satu bulan.
// Semua penjumlahan dilakukan di decimal atas nilai yang sudah dibulatkan ke sen,
// jadi urutan bus/siswa tidak mempengaruhi total.
func BuildFeeSummary(buses []model.Bus, policy FeePolicy, month, year int, debug bool) dto.FeeSummaryResponse {
	info := policy.Info()

	totalCollected := decimal.Zero
	totalExpected := decimal.Zero
	totalSalary := decimal.Zero
	totalStudents := 0

	summaries := make([]dto.BusFeeSummary, 0, len(buses))
	for _, bus := range buses {
		busCollected := decimal.Zero
		busExpected := decimal.Zero

		students := make([]dto.StudentFeeLine, 0, len(bus.Students))
		for _, s := range bus.Students {
			if s.StudentIsDeleted {
				continue
			}
			totalFee := ResolveTotalFee(s, month, year)
			actualCollected := SumCollected(s, month, year)
			split := policy.ComputeSplit(totalFee, actualCollected)

			busCollected = busCollected.Add(cents(split.ActualBusFeeCollected))
			busExpected = busExpected.Add(cents(split.ExpectedBusFee))

			line := dto.StudentFeeLine{
				ID:                    s.StudentID,
				Name:                  s.StudentFullName,
				District:              unknownDistrict,
				TotalFee:              totalFee,
				SchoolFee:             split.SchoolFee,
				ExpectedBusFee:        split.ExpectedBusFee,
				ActualBusFeeCollected: split.ActualBusFeeCollected,
				UnpaidBusFee:          split.UnpaidBusFee,
			}
			if s.StudentDistrict != nil {
				line.District = *s.StudentDistrict
			}
			if debug {
				line.Debug = &dto.StudentFeeDebug{
					CalcVersion:     info.CalcVersion,
					ActualCollected: actualCollected,
					SchoolFirst:     info.SchoolFirst,
					BusCap:          info.BusCap,
				}
			}
			students = append(students, line)
		}

		var driver *dto.DriverSalary
		salary := decimal.Zero
		if bus.Driver != nil {
			salary = cents(bus.Driver.EmployeeSalary)
			driver = &dto.DriverSalary{
				ID:     bus.Driver.EmployeeID,
				Name:   bus.Driver.EmployeeFullName,
				Salary: money(salary),
			}
		}

		totalCollected = totalCollected.Add(busCollected)
		totalExpected = totalExpected.Add(busExpected)
		totalSalary = totalSalary.Add(salary)
		totalStudents += len(students)

		profitOrLoss := busCollected.Sub(salary).Round(2)
		status := dto.BusStatusProfit
		if profitOrLoss.IsNegative() {
			status = dto.BusStatusShortage
		}

		summaries = append(summaries, dto.BusFeeSummary{
			BusID:                bus.BusID,
			Name:                 bus.BusName,
			Route:                bus.BusRoute,
			Plate:                bus.BusPlate,
			Driver:               driver,
			StudentCount:         len(students),
			TotalBusFeeCollected: money(busCollected),
			ExpectedBusIncome:    money(busExpected),
			CollectionGap:        money(busExpected.Sub(busCollected)),
			Status:               status,
			ProfitOrLossAmount:   money(profitOrLoss),
			Students:             students,
		})
	}

	return dto.FeeSummaryResponse{
		Success:              true,
		Policy:               info,
		Month:                month,
		Year:                 year,
		TotalBuses:           len(summaries),
		TotalStudentsWithBus: totalStudents,
		TotalBusFeeCollected: money(totalCollected),
		ExpectedBusIncome:    money(totalExpected),
		BusFeeCollectionGap:  money(totalExpected.Sub(totalCollected)),
		TotalBusSalary:       money(totalSalary),
		ProfitOrLoss:         money(totalCollected.Sub(totalSalary)),
		BusSummaries:         summaries,
	}
}
