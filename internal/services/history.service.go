package services

import (
	"sync"
	"time"

	"github.com/spaceinventor/sidoc/internal/models"
)

// ReportHistory keeps a bounded in-memory window of past procedure results.
type ReportHistory struct {
	mu            sync.RWMutex
	canReports    []models.CANReport
	powerReadings []models.PowerStatus
	maxDataPoints int
}

var reportHistory = &ReportHistory{
	maxDataPoints: 60,
}

// RecordCANReport appends a finished CAN checker report to the history.
func RecordCANReport(r *models.CANReport) {
	if r == nil {
		return
	}
	reportHistory.mu.Lock()
	defer reportHistory.mu.Unlock()

	reportHistory.canReports = append(reportHistory.canReports, *r)
	if len(reportHistory.canReports) > reportHistory.maxDataPoints {
		reportHistory.canReports = reportHistory.canReports[1:]
	}
}

// RecordPowerStatus appends a power supply reading to the history.
func RecordPowerStatus(p *models.PowerStatus) {
	if p == nil {
		return
	}
	reportHistory.mu.Lock()
	defer reportHistory.mu.Unlock()

	reportHistory.powerReadings = append(reportHistory.powerReadings, *p)
	if len(reportHistory.powerReadings) > reportHistory.maxDataPoints {
		reportHistory.powerReadings = reportHistory.powerReadings[1:]
	}
}

// GetCANReports returns the CAN reports recorded within the given window.
func GetCANReports(window time.Duration) []models.CANReport {
	reportHistory.mu.RLock()
	defer reportHistory.mu.RUnlock()

	cutoff := time.Now().Add(-window)
	filtered := []models.CANReport{}
	for _, r := range reportHistory.canReports {
		if r.Timestamp.After(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GetPowerReadings returns the power readings recorded within the given window.
func GetPowerReadings(window time.Duration) []models.PowerStatus {
	reportHistory.mu.RLock()
	defer reportHistory.mu.RUnlock()

	cutoff := time.Now().Add(-window)
	filtered := []models.PowerStatus{}
	for _, p := range reportHistory.powerReadings {
		if p.Timestamp.After(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// LatestCANReport returns the most recent CAN report, nil when none exists.
func LatestCANReport() *models.CANReport {
	reportHistory.mu.RLock()
	defer reportHistory.mu.RUnlock()

	if len(reportHistory.canReports) == 0 {
		return nil
	}
	r := reportHistory.canReports[len(reportHistory.canReports)-1]
	return &r
}

// LatestPowerStatus returns the most recent power reading, nil when none exists.
func LatestPowerStatus() *models.PowerStatus {
	reportHistory.mu.RLock()
	defer reportHistory.mu.RUnlock()

	if len(reportHistory.powerReadings) == 0 {
		return nil
	}
	p := reportHistory.powerReadings[len(reportHistory.powerReadings)-1]
	return &p
}
