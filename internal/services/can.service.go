package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spaceinventor/sidoc/internal/config"
	"github.com/spaceinventor/sidoc/internal/models"
	"github.com/spaceinventor/sidoc/internal/param"
)

// dropRateThreshold is the fraction of dropped packets at which an interface
// is flagged as degraded.
const dropRateThreshold = 0.20

// CheckService runs the operator health-check procedures against the param
// binding. Every check is a single blocking attempt; binding and webhook
// failures never propagate out of a run.
type CheckService struct {
	binding  param.Client
	notifier Notifier
	cfg      *config.Config
}

var checkService *CheckService

// InitCheckService wires the package-level check service used by the
// controllers and procedures.
func InitCheckService(binding param.Client, notifier Notifier, cfg *config.Config) *CheckService {
	checkService = NewCheckService(binding, notifier, cfg)
	return checkService
}

func NewCheckService(binding param.Client, notifier Notifier, cfg *config.Config) *CheckService {
	return &CheckService{binding: binding, notifier: notifier, cfg: cfg}
}

// GetCheckService returns the wired check service, nil before InitCheckService.
func GetCheckService() *CheckService {
	return checkService
}

// notify attempts a webhook notification. Delivery failures are logged and
// dropped, never surfaced to the check in progress.
func (s *CheckService) notify(text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(text); err != nil {
		log.Printf("[NOTIFY] %v", err)
	}
}

// CheckCANInterface takes a statistics snapshot of one interface on a node
// and classifies it. It returns the snapshot when the interface was actually
// checked (healthy, or degraded by drop rate) and nil when the check failed
// or was inconclusive. Classification order is fixed: no traffic, drop rate,
// tx/rx errors, auth errors, healthy.
func (s *CheckService) CheckCANInterface(name string, node int) *models.IfStat {
	stats, err := s.binding.Ifstat(name, node)
	if err != nil {
		s.report(fmt.Sprintf("An error occurred while checking %s on Node %d: %v", name, node, err))
		return nil
	}

	summary := []string{
		fmt.Sprintf("%s Interface Statistics on Node %d:", name, node),
		fmt.Sprintf("TX: %d, RX: %d", stats.TX, stats.RX),
		fmt.Sprintf("TX Errors: %d, RX Errors: %d", stats.TXError, stats.RXError),
		fmt.Sprintf("Dropped Packets: %d, Auth Errors: %d", stats.Drop, stats.AuthError),
		fmt.Sprintf("TX Bytes: %d, RX Bytes: %d", stats.TXBytes, stats.RXBytes),
	}
	for _, line := range summary {
		log.Printf("[CAN] %s", line)
	}
	s.notify(strings.Join(summary, "\n"))

	rate, ok := stats.DropRate()
	if !ok {
		s.report(fmt.Sprintf("No packets transmitted on %s on Node %d yet.", name, node))
		return nil
	}

	if rate >= dropRateThreshold {
		s.report(fmt.Sprintf("%.2f%% of packets dropped on %s on Node %d.", rate*100, name, node))
		return stats
	}

	if stats.TXError > 0 || stats.RXError > 0 {
		s.report(fmt.Sprintf("Transmission/Reception errors on %s on Node %d.", name, node))
		return nil
	}

	if stats.AuthError > 0 {
		s.report(fmt.Sprintf("Authentication errors on %s on Node %d.", name, node))
		return nil
	}

	s.report(fmt.Sprintf("%s appears to be operating correctly on Node %d.", name, node))
	return stats
}

// RunCANChecker checks every configured interface on the configured CAN node,
// cross-compares CAN0 against CAN1 when both are configured, and reports an
// overall verdict. It always completes, no matter how many checks failed.
func (s *CheckService) RunCANChecker() *models.CANReport {
	s.report("Starting CAN interface checks...")

	report := &models.CANReport{
		Timestamp: time.Now(),
		Stats:     make(map[int]map[string]*models.IfStat),
		AllOK:     true,
	}

	nodes := []int{s.cfg.CANNode}
	for _, node := range nodes {
		log.Printf("[CAN] Checking interfaces on Node %d...", node)
		nodeStats := make(map[string]*models.IfStat, len(s.cfg.Interfaces))
		for _, name := range s.cfg.Interfaces {
			stats := s.CheckCANInterface(name, node)
			if stats == nil {
				report.AllOK = false
			}
			nodeStats[name] = stats
		}
		report.Stats[node] = nodeStats
	}

	for node, ifstats := range report.Stats {
		can0, ok0 := ifstats["CAN0"]
		can1, ok1 := ifstats["CAN1"]
		if !ok0 || !ok1 {
			s.report(fmt.Sprintf("Node %d has no CAN0 vs CAN1 cross-comparison because both are not in the configured interfaces", node))
			continue
		}

		cc := models.CrossCompare{Node: node}
		if can0 == nil {
			s.report(fmt.Sprintf("Node %d - CAN0 stats are missing (check failed earlier). Using 0 for cross-compare.", node))
		} else {
			cc.CAN0RX, cc.CAN0TX = can0.RX, can0.TX
		}
		if can1 == nil {
			s.report(fmt.Sprintf("Node %d - CAN1 stats are missing (check failed earlier). Using 0 for cross-compare.", node))
		} else {
			cc.CAN1RX, cc.CAN1TX = can1.RX, can1.TX
		}

		cc.RXDiff = absDiff(cc.CAN0RX, cc.CAN1RX)
		cc.TXDiff = absDiff(cc.CAN0TX, cc.CAN1TX)
		report.Cross = append(report.Cross, cc)

		s.report(fmt.Sprintf("Cross-Compare Node %d: CAN0.RX=%d, CAN1.RX=%d, CAN0.TX=%d, CAN1.TX=%d",
			node, cc.CAN0RX, cc.CAN1RX, cc.CAN0TX, cc.CAN1TX))
		s.report(fmt.Sprintf("RX diff = %d, TX diff = %d", cc.RXDiff, cc.TXDiff))
	}

	if report.AllOK {
		s.report("All specified CAN interfaces are functioning correctly on all nodes.")
	} else {
		s.report("One or more CAN interfaces have reported issues on some nodes.")
	}

	return report
}

// report logs a message and mirrors it to the webhook.
func (s *CheckService) report(msg string) {
	log.Printf("[CAN] %s", msg)
	s.notify(msg)
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
