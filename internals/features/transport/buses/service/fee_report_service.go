// file: internals/features/transport/buses/service/fee_report_service.go
package service

import (
	"context"
	"fmt"

	"schoolbus_backend/internals/features/transport/buses/dto"
	"schoolbus_backend/internals/features/transport/buses/repository"
)

type FeeReportService struct {
	Store  repository.Store
	Policy FeePolicy
}

func NewFeeReportService(store repository.Store, policy FeePolicy) *FeeReportService {
	return &FeeReportService{Store: store, Policy: policy}
}

func (s *FeeReportService) CalcVersion() string {
	return s.Policy.Info().CalcVersion
}

func (s *FeeReportService) Summary(ctx context.Context, month, year int, debug bool) (dto.FeeSummaryResponse, error) {
	buses, err := s.Store.ListBusesForFeeReport(ctx, month, year)
	if err != nil {
		return dto.FeeSummaryResponse{}, fmt.Errorf("fee summary %02d/%d: %w", month, year, err)
	}
	return BuildFeeSummary(buses, s.Policy, month, year, debug), nil
}
