package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaceinventor/sidoc/internal/config"
	"github.com/spaceinventor/sidoc/internal/models"
)

// fakeBinding serves canned stats and parameter values keyed by name.
type fakeBinding struct {
	params map[string]float64
	stats  map[string]*models.IfStat
	errs   map[string]error
}

func (f *fakeBinding) Get(name string, node int) (float64, error) {
	if err, ok := f.errs[name]; ok {
		return 0, err
	}
	v, ok := f.params[name]
	if !ok {
		return 0, fmt.Errorf("unknown param %q", name)
	}
	return v, nil
}

func (f *fakeBinding) Ifstat(name string, node int) (*models.IfStat, error) {
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	s, ok := f.stats[name]
	if !ok {
		return nil, fmt.Errorf("unknown interface %q", name)
	}
	return s, nil
}

// recordingNotifier collects every message sent during a check.
type recordingNotifier struct {
	msgs []string
}

func (r *recordingNotifier) Send(text string) error {
	r.msgs = append(r.msgs, text)
	return nil
}

func (r *recordingNotifier) contains(substr string) bool {
	for _, m := range r.msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func newTestService(binding *fakeBinding, interfaces ...string) (*CheckService, *recordingNotifier) {
	if len(interfaces) == 0 {
		interfaces = []string{"CAN0", "CAN1"}
	}
	notifier := &recordingNotifier{}
	cfg := &config.Config{
		PSUNode:    4,
		CANNode:    1,
		Interfaces: interfaces,
	}
	return NewCheckService(binding, notifier, cfg), notifier
}

func TestCheckInterfaceNoTraffic(t *testing.T) {
	// tx+drop == 0 means inconclusive, regardless of other fields
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 0, RX: 500, Drop: 0, TXError: 9, RXError: 9, AuthError: 9},
	}}
	s, notifier := newTestService(binding)

	stats := s.CheckCANInterface("CAN0", 1)

	assert.Nil(t, stats)
	assert.True(t, notifier.contains("No packets transmitted on CAN0 on Node 1 yet."))
}

func TestCheckInterfaceDropRateFlagged(t *testing.T) {
	// 30/130 = 23.08% >= 20%: returns the stats even with nonzero error
	// counters, drop rate has priority
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, RX: 80, Drop: 30, TXError: 5, RXError: 2},
	}}
	s, notifier := newTestService(binding)

	stats := s.CheckCANInterface("CAN0", 1)

	require.NotNil(t, stats)
	assert.Equal(t, uint64(100), stats.TX)
	assert.True(t, notifier.contains("23.08% of packets dropped on CAN0 on Node 1."))
	assert.False(t, notifier.contains("Transmission/Reception errors"))
}

func TestCheckInterfaceDropRateBoundary(t *testing.T) {
	// Exactly 20% is flagged
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 80, Drop: 20},
	}}
	s, notifier := newTestService(binding)

	stats := s.CheckCANInterface("CAN0", 1)

	require.NotNil(t, stats)
	assert.True(t, notifier.contains("20.00% of packets dropped"))
}

func TestCheckInterfaceTxRxErrors(t *testing.T) {
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, Drop: 1, TXError: 3},
		"CAN1": {TX: 100, Drop: 1, RXError: 7},
	}}
	s, notifier := newTestService(binding)

	assert.Nil(t, s.CheckCANInterface("CAN0", 1))
	assert.Nil(t, s.CheckCANInterface("CAN1", 1))
	assert.True(t, notifier.contains("Transmission/Reception errors on CAN0 on Node 1."))
	assert.True(t, notifier.contains("Transmission/Reception errors on CAN1 on Node 1."))
}

func TestCheckInterfaceAuthErrors(t *testing.T) {
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, Drop: 1, AuthError: 2},
	}}
	s, notifier := newTestService(binding)

	assert.Nil(t, s.CheckCANInterface("CAN0", 1))
	assert.True(t, notifier.contains("Authentication errors on CAN0 on Node 1."))
}

func TestCheckInterfaceHealthy(t *testing.T) {
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 1000, RX: 950, Drop: 10},
	}}
	s, notifier := newTestService(binding)

	stats := s.CheckCANInterface("CAN0", 1)

	require.NotNil(t, stats)
	assert.True(t, notifier.contains("CAN0 appears to be operating correctly on Node 1."))
}

func TestCheckInterfaceBindingError(t *testing.T) {
	binding := &fakeBinding{errs: map[string]error{
		"CAN0": fmt.Errorf("timeout talking to node"),
	}}
	s, notifier := newTestService(binding)

	assert.Nil(t, s.CheckCANInterface("CAN0", 1))
	assert.True(t, notifier.contains("An error occurred while checking CAN0 on Node 1"))
}

func TestCANCheckerAllHealthy(t *testing.T) {
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, RX: 95, Drop: 1},
		"CAN1": {TX: 98, RX: 97, Drop: 1},
	}}
	s, notifier := newTestService(binding)

	report := s.RunCANChecker()

	assert.True(t, report.AllOK)
	require.Contains(t, report.Stats, 1)
	assert.NotNil(t, report.Stats[1]["CAN0"])
	assert.NotNil(t, report.Stats[1]["CAN1"])
	assert.True(t, notifier.contains("All specified CAN interfaces are functioning correctly on all nodes."))

	require.Len(t, report.Cross, 1)
	cc := report.Cross[0]
	assert.Equal(t, uint64(2), cc.RXDiff)
	assert.Equal(t, uint64(2), cc.TXDiff)
}

func TestCANCheckerCrossCompareWithAbsentSide(t *testing.T) {
	// CAN0 failed: its side contributes zero, so the diffs are CAN1's raw
	// counters, and the substitution is reported
	binding := &fakeBinding{
		stats: map[string]*models.IfStat{
			"CAN1": {TX: 5, RX: 10, Drop: 0},
		},
		errs: map[string]error{
			"CAN0": fmt.Errorf("node unreachable"),
		},
	}
	s, notifier := newTestService(binding)

	report := s.RunCANChecker()

	assert.False(t, report.AllOK)
	require.Len(t, report.Cross, 1)
	cc := report.Cross[0]
	assert.Equal(t, uint64(0), cc.CAN0RX)
	assert.Equal(t, uint64(10), cc.RXDiff)
	assert.Equal(t, uint64(5), cc.TXDiff)
	assert.True(t, notifier.contains("CAN0 stats are missing (check failed earlier). Using 0 for cross-compare."))
	assert.True(t, notifier.contains("One or more CAN interfaces have reported issues on some nodes."))
}

func TestCANCheckerSkipsCrossCompare(t *testing.T) {
	// Only the exact names CAN0 and CAN1 trigger the cross-compare
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, RX: 95, Drop: 1},
		"CAN2": {TX: 100, RX: 95, Drop: 1},
	}}
	s, notifier := newTestService(binding, "CAN0", "CAN2")

	report := s.RunCANChecker()

	assert.True(t, report.AllOK)
	assert.Empty(t, report.Cross)
	assert.True(t, notifier.contains("no CAN0 vs CAN1 cross-comparison"))
}

func TestCANCheckerNotAllOK(t *testing.T) {
	// A flagged (degraded) interface still counts as checked; an absent one
	// does not
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, Drop: 30}, // flagged, non-absent
		"CAN1": {TX: 0, Drop: 0},    // inconclusive, absent
	}}
	s, _ := newTestService(binding)

	report := s.RunCANChecker()

	assert.False(t, report.AllOK)
	assert.NotNil(t, report.Stats[1]["CAN0"])
	assert.Nil(t, report.Stats[1]["CAN1"])
}

func TestCANCheckerCompletesDespiteNotifierFailure(t *testing.T) {
	binding := &fakeBinding{stats: map[string]*models.IfStat{
		"CAN0": {TX: 100, RX: 95, Drop: 1},
		"CAN1": {TX: 98, RX: 97, Drop: 1},
	}}
	cfg := &config.Config{CANNode: 1, Interfaces: []string{"CAN0", "CAN1"}}
	s := NewCheckService(binding, failingNotifier{}, cfg)

	report := s.RunCANChecker()

	assert.True(t, report.AllOK)
}

type failingNotifier struct{}

func (failingNotifier) Send(text string) error {
	return fmt.Errorf("webhook unreachable")
}
