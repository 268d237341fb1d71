package mapper

import (
	"github.com/straye-as/sales-target-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// ToPeriodDTO converts Period to PeriodDTO
func ToPeriodDTO(period domain.Period) domain.PeriodDTO {
	return domain.PeriodDTO{
		Token: period.Token,
		Type:  period.Type,
		Start: period.Start.UTC().Format(timestampLayout),
		End:   period.End.UTC().Format(timestampLayout),
	}
}

// ToScopeMetricsDTO converts ScopeMetrics to ScopeMetricsDTO
func ToScopeMetricsDTO(metrics domain.ScopeMetrics) domain.ScopeMetricsDTO {
	return domain.ScopeMetricsDTO{
		TotalOffers:      metrics.TotalOffers,
		TotalOffersValue: metrics.TotalOffersValue.InexactFloat64(),
		OrdersReceived:   metrics.OrdersReceived.InexactFloat64(),
		OpenFunnel:       metrics.OpenFunnel.InexactFloat64(),
		ExpectedOffers:   metrics.ExpectedOffers.InexactFloat64(),
		OrderBooking:     metrics.OrderBooking,
	}
}

// ToPerformanceRecordDTO converts PerScopePerProductRecord to PerformanceRecordDTO
func ToPerformanceRecordDTO(record *domain.PerScopePerProductRecord) domain.PerformanceRecordDTO {
	return domain.PerformanceRecordDTO{
		ScopeType:          record.Scope.Kind,
		ScopeID:            record.Scope.ID,
		ScopeName:          record.Scope.Name,
		ZoneID:             record.Scope.ZoneID,
		TargetID:           record.TargetID,
		ProductType:        record.ProductType,
		StoredPeriodType:   record.StoredPeriodType,
		TargetValue:        record.TargetValue.InexactFloat64(),
		TargetOfferCount:   record.TargetOfferCount,
		ActualValue:        record.ActualValue.InexactFloat64(),
		ActualOfferCount:   record.ActualOfferCount,
		AchievementPercent: record.Achievement.AchievementPercent,
		Variance:           record.Achievement.Variance.InexactFloat64(),
		VariancePercent:    record.Achievement.VariancePercent,
	}
}

// ToPerformanceSummaryDTO converts ScopeSummaryRecord to PerformanceSummaryDTO
func ToPerformanceSummaryDTO(record *domain.ScopeSummaryRecord) domain.PerformanceSummaryDTO {
	return domain.PerformanceSummaryDTO{
		ScopeType:                  record.Scope.Kind,
		ScopeID:                    record.Scope.ID,
		ScopeName:                  record.Scope.Name,
		ZoneID:                     record.Scope.ZoneID,
		TargetRows:                 record.TargetRows,
		Normalized:                 record.Normalized,
		TargetValue:                record.TargetValue.InexactFloat64(),
		TargetOfferCount:           record.TargetOfferCount,
		ActualValue:                record.ActualValue.InexactFloat64(),
		ActualOfferCount:           record.ActualOfferCount,
		AchievementPercent:         record.Achievement.AchievementPercent,
		Variance:                   record.Achievement.Variance.InexactFloat64(),
		VariancePercent:            record.Achievement.VariancePercent,
		ExpectedAchievementPercent: record.Achievement.ExpectedAchievementPercent,
		Metrics:                    ToScopeMetricsDTO(record.Metrics),
	}
}

// ToPerformanceReportDTO converts an ungrouped report
func ToPerformanceReportDTO(report *domain.ScopePerformanceReport) domain.PerformanceReportDTO {
	records := make([]domain.PerformanceRecordDTO, len(report.Records))
	for i := range report.Records {
		records[i] = ToPerformanceRecordDTO(&report.Records[i])
	}
	return domain.PerformanceReportDTO{
		Data:    records,
		Period:  toReportPeriodDTO(report.TargetPeriod, report.ActualPeriod),
		Grouped: false,
	}
}

// ToSummaryReportDTO converts a grouped report
func ToSummaryReportDTO(report *domain.ScopeSummaryReport) domain.PerformanceReportDTO {
	records := make([]domain.PerformanceSummaryDTO, len(report.Records))
	for i := range report.Records {
		records[i] = ToPerformanceSummaryDTO(&report.Records[i])
	}
	return domain.PerformanceReportDTO{
		Data:    records,
		Period:  toReportPeriodDTO(report.TargetPeriod, report.ActualPeriod),
		Grouped: true,
	}
}

func toReportPeriodDTO(target, actual domain.Period) domain.ReportPeriodDTO {
	return domain.ReportPeriodDTO{
		Target: ToPeriodDTO(target),
		Actual: ToPeriodDTO(actual),
	}
}
