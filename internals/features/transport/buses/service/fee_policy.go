// file: internals/features/transport/buses/service/fee_policy.go
package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"schoolbus_backend/internals/configs"
	"schoolbus_backend/internals/features/transport/buses/dto"
)

const (
	CalcVersionSchoolFirst     = "schoolFirst_v2"
	CalcVersionStandardFee     = "standardSchoolFee_v0"
	CalcVersionFixedBusPortion = "fixedBusPortion_v1"
)

// FeeSplit: bagian sekolah vs bus dari tagihan & pembayaran satu siswa di satu bulan.
type FeeSplit struct {
	SchoolFee             float64
	ExpectedBusFee        float64
	ActualBusFeeCollected float64
	UnpaidBusFee          float64
}

// FeePolicy membagi total fee & pembayaran antara sekolah dan bus.
type FeePolicy interface {
	ComputeSplit(totalFee, actualCollected float64) FeeSplit
	Info() dto.PolicyInfo
}

// R2 membulatkan ke sen, half away from zero. NaN/Inf dianggap 0.
func R2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

func roundedSplit(school, expected, actual float64) FeeSplit {
	return FeeSplit{
		SchoolFee:             R2(school),
		ExpectedBusFee:        R2(expected),
		ActualBusFeeCollected: R2(actual),
		UnpaidBusFee:          R2(expected - actual),
	}
}

/* =========================
   schoolFirst_v2 (aktif)
========================= */

// SchoolFirstPolicy: sekolah dapat jatah dulu sampai SchoolFirst, sisanya bus (maks BusCap).
// Pembayaran menutup sekolah dulu, lalu bus, tidak lebih dari expected bus fee.
type SchoolFirstPolicy struct {
	SchoolFirst float64
	BusCap      float64
}

func DefaultSchoolFirstPolicy() SchoolFirstPolicy {
	return SchoolFirstPolicy{SchoolFirst: 17, BusCap: 10}
}

func (p SchoolFirstPolicy) ComputeSplit(totalFee, actualCollected float64) FeeSplit {
	schoolFee := math.Min(totalFee, p.SchoolFirst)
	expectedBusFee := math.Min(math.Max(totalFee-p.SchoolFirst, 0), p.BusCap)

	remainder := math.Max(actualCollected-schoolFee, 0)
	actualBusFeeCollected := math.Min(remainder, expectedBusFee)

	return roundedSplit(schoolFee, expectedBusFee, actualBusFeeCollected)
}

func (p SchoolFirstPolicy) Info() dto.PolicyInfo {
	schoolFirst, busCap := p.SchoolFirst, p.BusCap
	return dto.PolicyInfo{
		CalcVersion: CalcVersionSchoolFirst,
		Description: fmt.Sprintf(
			"School fee first up to %s, bus remainder capped at %s. Payments cover school first.",
			decimal.NewFromFloat(schoolFirst).String(), decimal.NewFromFloat(busCap).String(),
		),
		SchoolFirst: &schoolFirst,
		BusCap:      &busCap,
	}
}

/* =========================
   Historical variants
========================= */

// StandardSchoolFeePolicy: sekolah = min(total, StandardFee), bus = sisa tanpa cap,
// semua kelebihan bayar di atas jatah sekolah dihitung masuk bus.
type StandardSchoolFeePolicy struct {
	StandardFee float64
}

func (p StandardSchoolFeePolicy) ComputeSplit(totalFee, actualCollected float64) FeeSplit {
	schoolFee := math.Min(totalFee, p.StandardFee)
	expectedBusFee := totalFee - schoolFee

	actualBusFeeCollected := 0.0
	if actualCollected > schoolFee {
		actualBusFeeCollected = actualCollected - schoolFee
	}
	return roundedSplit(schoolFee, expectedBusFee, actualBusFeeCollected)
}

func (p StandardSchoolFeePolicy) Info() dto.PolicyInfo {
	standard := p.StandardFee
	return dto.PolicyInfo{
		CalcVersion: CalcVersionStandardFee,
		Description: "School fee capped at the standard fee, bus takes the rest. Legacy, uncapped bus collection.",
		StandardFee: &standard,
	}
}

// FixedBusPortionPolicy: bus dapat porsi tetap BusPortion dari atas, sekolah sisanya.
type FixedBusPortionPolicy struct {
	BusPortion float64
}

func (p FixedBusPortionPolicy) ComputeSplit(totalFee, actualCollected float64) FeeSplit {
	schoolFee := math.Max(totalFee-p.BusPortion, 0)
	expectedBusFee := totalFee - schoolFee

	actualBusFeeCollected := math.Min(math.Max(actualCollected-schoolFee, 0), expectedBusFee)
	return roundedSplit(schoolFee, expectedBusFee, actualBusFeeCollected)
}

func (p FixedBusPortionPolicy) Info() dto.PolicyInfo {
	portion := p.BusPortion
	return dto.PolicyInfo{
		CalcVersion: CalcVersionFixedBusPortion,
		Description: "Bus takes a fixed portion off the top, school takes the rest. Legacy.",
		BusPortion:  &portion,
	}
}

// PolicyFromConfig memilih kebijakan dari ENV BUS_FEE_POLICY.
func PolicyFromConfig(cfg configs.FeePolicyConfig) (FeePolicy, error) {
	switch cfg.Version {
	case "", CalcVersionSchoolFirst:
		return SchoolFirstPolicy{SchoolFirst: cfg.SchoolFirst, BusCap: cfg.BusCap}, nil
	case CalcVersionStandardFee:
		return StandardSchoolFeePolicy{StandardFee: cfg.StandardFee}, nil
	case CalcVersionFixedBusPortion:
		return FixedBusPortionPolicy{BusPortion: cfg.BusPortion}, nil
	default:
		return nil, fmt.Errorf("unknown bus fee policy %q", cfg.Version)
	}
}
