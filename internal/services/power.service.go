package services

import (
	"log"
	"time"

	"github.com/spaceinventor/sidoc/internal/models"
)

// CheckPowerSupply reads the output voltage and current of the configured
// power supply and returns the consumed power. Read failures are absorbed:
// both readings fall back to zero.
func (s *CheckService) CheckPowerSupply() *models.PowerStatus {
	node := s.cfg.PSUNode
	log.Printf("[PSU] Checking the power supply...")

	voltage, err := s.binding.Get("psu_voltage_out", node)
	var current float64
	if err == nil {
		current, err = s.binding.Get("psu_current_out", node)
	}
	if err != nil {
		log.Printf("[PSU] Error reading power supply parameters: %v", err)
		voltage, current = 0, 0
	} else {
		log.Printf("[PSU] Voltage: %.6f V", voltage)
		log.Printf("[PSU] Current: %.6f A", current)
	}

	power := voltage * current
	log.Printf("[PSU] Power Consumption: %.6f W", power)

	return &models.PowerStatus{
		Timestamp: time.Now(),
		Node:      node,
		Voltage:   voltage,
		Current:   current,
		Power:     power,
	}
}
