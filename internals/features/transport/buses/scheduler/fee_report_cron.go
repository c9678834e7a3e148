// file: internals/features/transport/buses/scheduler/fee_report_cron.go
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"schoolbus_backend/internals/features/transport/buses/dto"
	"schoolbus_backend/internals/features/transport/buses/service"
)

// PreviousMonth: (month, year) bulan sebelum now.
func PreviousMonth(now time.Time) (int, int) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prev := first.AddDate(0, -1, 0)
	return int(prev.Month()), prev.Year()
}

// RunMonthlyFeeReport menghitung laporan bulan lalu dan mencatat total-totalnya.
func RunMonthlyFeeReport(ctx context.Context, reports *service.FeeReportService, log *zap.Logger, now time.Time) error {
	month, year := PreviousMonth(now)
	res, err := reports.Summary(ctx, month, year, false)
	if err != nil {
		return err
	}
	log.Info("monthly bus fee report",
		zap.String("calc_version", res.Policy.CalcVersion),
		zap.Int("month", res.Month),
		zap.Int("year", res.Year),
		zap.Int("buses", res.TotalBuses),
		zap.Int("students", res.TotalStudentsWithBus),
		zap.Float64("collected", res.TotalBusFeeCollected),
		zap.Float64("expected", res.ExpectedBusIncome),
		zap.Float64("gap", res.BusFeeCollectionGap),
		zap.Float64("salary", res.TotalBusSalary),
		zap.Float64("profit_or_loss", res.ProfitOrLoss),
	)
	for _, b := range res.BusSummaries {
		if b.Status == dto.BusStatusShortage {
			log.Warn("bus fee shortage",
				zap.Uint("bus_id", b.BusID),
				zap.String("bus_name", b.Name),
				zap.Float64("profit_or_loss", b.ProfitOrLossAmount),
			)
		}
	}
	return nil
}

// StartMonthlyFeeReportCron: schedule kosong = tidak dijalankan.
// Mengembalikan *cron.Cron supaya bisa di-Stop saat shutdown.
func StartMonthlyFeeReportCron(schedule string, reports *service.FeeReportService, log *zap.Logger) (*cron.Cron, error) {
	log = log.Named("fee-report-cron")
	if schedule == "" {
		log.Info("BUS_FEE_REPORT_CRON empty, monthly report disabled")
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := RunMonthlyFeeReport(ctx, reports, log, time.Now()); err != nil {
			log.Error("monthly bus fee report failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	log.Info("started", zap.String("schedule", schedule))
	c.Start()
	return c, nil
}
