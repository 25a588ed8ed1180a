package services

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Procedure is implemented by runnable operator procedures.
type Procedure interface {
	Name() string
	Run() error
}

// CANProcedure runs the aggregate CAN interface checker and records the
// resulting report.
type CANProcedure struct{}

func (CANProcedure) Name() string { return "can-checker" }

func (CANProcedure) Run() error {
	s := GetCheckService()
	if s == nil {
		return fmt.Errorf("check service not initialized")
	}
	report := s.RunCANChecker()
	RecordCANReport(report)
	BroadcastEvent("can_report", report)
	return nil
}

// PowerProcedure reads the power supply and records the reading.
type PowerProcedure struct{}

func (PowerProcedure) Name() string { return "power-supply" }

func (PowerProcedure) Run() error {
	s := GetCheckService()
	if s == nil {
		return fmt.Errorf("check service not initialized")
	}
	status := s.CheckPowerSupply()
	RecordPowerStatus(status)
	BroadcastEvent("power_report", status)
	return nil
}

type procedureRunner struct {
	mu      sync.Mutex
	running bool
}

var runner = &procedureRunner{}

// RunAll runs the given procedures once, sequentially, in order. A failing
// procedure is logged and does not stop the rest.
func RunAll(procs ...Procedure) {
	for _, p := range procs {
		if err := p.Run(); err != nil {
			log.Printf("[RUNNER] Procedure %s failed: %v", p.Name(), err)
		}
	}
}

// StartProcedureRunner re-runs the given procedures on the given interval in
// the background. Starting an already running runner is a no-op.
func StartProcedureRunner(interval time.Duration, procs ...Procedure) {
	runner.mu.Lock()
	if runner.running {
		runner.mu.Unlock()
		return
	}
	runner.running = true
	runner.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			runner.mu.Lock()
			if !runner.running {
				runner.mu.Unlock()
				return
			}
			runner.mu.Unlock()

			RunAll(procs...)
		}
	}()

	log.Printf("[RUNNER] Procedure runner started (interval: %v)", interval)
}

// StopProcedureRunner stops the background runner after the current cycle.
func StopProcedureRunner() {
	runner.mu.Lock()
	runner.running = false
	runner.mu.Unlock()
	log.Println("[RUNNER] Procedure runner stopped")
}
