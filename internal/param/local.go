package param

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/spaceinventor/sidoc/internal/models"
)

// LocalClient reads interface counters from the local kernel (socketcan
// interfaces show up like any other netdev). Useful for bench setups without
// a param bridge. Parameter reads are not available locally.
type LocalClient struct{}

func (LocalClient) Get(name string, node int) (float64, error) {
	return 0, fmt.Errorf("param %q on node %d: local binding has no parameter table", name, node)
}

func (LocalClient) Ifstat(name string, node int) (*models.IfStat, error) {
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("reading interface counters: %w", err)
	}

	for _, c := range counters {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		return &models.IfStat{
			TX:      c.PacketsSent,
			RX:      c.PacketsRecv,
			TXError: c.Errout,
			RXError: c.Errin,
			Drop:    c.Dropin + c.Dropout,
			TXBytes: c.BytesSent,
			RXBytes: c.BytesRecv,
		}, nil
	}
	return nil, fmt.Errorf("interface %q not found on this host", name)
}
