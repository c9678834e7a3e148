// file: internals/features/transport/buses/dto/fee_summary_dto.go
package dto

// Query: GET /finance/detailed-v2?month=9&year=2025[&debug=1]
type FeeSummaryQuery struct {
	Month int    `query:"month" validate:"required,min=1,max=12"`
	Year  int    `query:"year" validate:"required,min=1"`
	Debug string `query:"debug"`
}

func (q FeeSummaryQuery) IsDebug() bool {
	return q.Debug == "1"
}

type PolicyInfo struct {
	CalcVersion string   `json:"calcVersion"`
	Description string   `json:"description"`
	SchoolFirst *float64 `json:"SCHOOL_FIRST,omitempty"`
	BusCap      *float64 `json:"BUS_CAP,omitempty"`
	StandardFee *float64 `json:"STANDARD_SCHOOL_FEE,omitempty"`
	BusPortion  *float64 `json:"BUS_PORTION,omitempty"`
}

type StudentFeeDebug struct {
	CalcVersion     string   `json:"calcVersion"`
	ActualCollected float64  `json:"actualCollected"`
	SchoolFirst     *float64 `json:"SCHOOL_FIRST,omitempty"`
	BusCap          *float64 `json:"BUS_CAP,omitempty"`
}

type StudentFeeLine struct {
	ID                    uint             `json:"id"`
	Name                  string           `json:"name"`
	District              string           `json:"district"`
	TotalFee              float64          `json:"totalFee"`
	SchoolFee             float64          `json:"schoolFee"`
	ExpectedBusFee        float64          `json:"expectedBusFee"`
	ActualBusFeeCollected float64          `json:"actualBusFeeCollected"`
	UnpaidBusFee          float64          `json:"unpaidBusFee"`
	Debug                 *StudentFeeDebug `json:"__debug,omitempty"`
}

type DriverSalary struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Salary float64 `json:"salary"`
}

const (
	BusStatusProfit   = "Profit"
	BusStatusShortage = "Shortage"
)

type BusFeeSummary struct {
	BusID                uint             `json:"busId"`
	Name                 string           `json:"name"`
	Route                string           `json:"route"`
	Plate                string           `json:"plate"`
	Driver               *DriverSalary    `json:"driver"`
	StudentCount         int              `json:"studentCount"`
	TotalBusFeeCollected float64          `json:"totalBusFeeCollected"`
	ExpectedBusIncome    float64          `json:"expectedBusIncome"`
	CollectionGap        float64          `json:"collectionGap"`
	Status               string           `json:"status"`
	ProfitOrLossAmount   float64          `json:"profitOrLossAmount"`
	Students             []StudentFeeLine `json:"students"`
}

type FeeSummaryResponse struct {
	Success              bool            `json:"success"`
	Policy               PolicyInfo      `json:"policy"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	TotalBuses           int             `json:"totalBuses"`
	TotalStudentsWithBus int             `json:"totalStudentsWithBus"`
	TotalBusFeeCollected float64         `json:"totalBusFeeCollected"`
	ExpectedBusIncome    float64         `json:"expectedBusIncome"`
	BusFeeCollectionGap  float64         `json:"busFeeCollectionGap"`
	TotalBusSalary       float64         `json:"totalBusSalary"`
	ProfitOrLoss         float64         `json:"profitOrLoss"`
	BusSummaries         []BusFeeSummary `json:"busSummaries"`
}
