package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AllocationServiceURL string
	TMSServiceURL        string

	// MonitorInterval is how often the staging monitor sweeps.
	MonitorInterval time.Duration

	// TMSAcceptLocalOnRemoteFailure keeps hand-offs successful when the
	// transportation system is unreachable, synthesizing a local shipment
	// identifier instead of failing the order.
	TMSAcceptLocalOnRemoteFailure bool
}
