package models

import "time"

// CrossCompare holds the CAN0 vs CAN1 counter comparison for one node.
// A side whose check failed contributes zero to the diffs.
type CrossCompare struct {
	Node   int    `json:"node"`
	CAN0RX uint64 `json:"can0_rx"`
	CAN0TX uint64 `json:"can0_tx"`
	CAN1RX uint64 `json:"can1_rx"`
	CAN1TX uint64 `json:"can1_tx"`
	RXDiff uint64 `json:"rx_diff"`
	TXDiff uint64 `json:"tx_diff"`
}

// CANReport is the outcome of one aggregate CAN checker run.
type CANReport struct {
	Timestamp time.Time `json:"timestamp"`
	// Stats maps node id -> interface name -> snapshot. A nil snapshot
	// means the check for that interface failed or was inconclusive.
	Stats map[int]map[string]*IfStat `json:"stats"`
	Cross []CrossCompare             `json:"cross_compare,omitempty"`
	AllOK bool                       `json:"all_ok"`
}
