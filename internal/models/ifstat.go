package models

// IfStat is a snapshot of a single CAN interface's counters, as reported by
// the param bridge. Once read it is never mutated.
type IfStat struct {
	TX        uint64 `json:"tx"`
	RX        uint64 `json:"rx"`
	TXError   uint64 `json:"tx_error"`
	RXError   uint64 `json:"rx_error"`
	Drop      uint64 `json:"drop"`
	AuthError uint64 `json:"autherr"`
	TXBytes   uint64 `json:"txbytes"`
	RXBytes   uint64 `json:"rxbytes"`
}

// DropRate returns the fraction of packets dropped out of everything the
// interface tried to send. The second return is false when no packets have
// been transmitted or dropped yet.
func (s *IfStat) DropRate() (float64, bool) {
	total := s.TX + s.Drop
	if total == 0 {
		return 0, false
	}
	return float64(s.Drop) / float64(total), true
}
