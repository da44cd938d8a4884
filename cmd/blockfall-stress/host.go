package main

import (
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats describes the machine and this process at the end of a run.
// Fields the platform cannot report stay zero.
type HostStats struct {
	CPUModel    string
	LogicalCPUs int
	ProcessCPU  float64
	ProcessRSS  uint64
}

func collectHost() HostStats {
	h := HostStats{CPUModel: "unknown"}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.Counts(true); err == nil {
		h.LogicalCPUs = n
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return h
	}
	if pct, err := proc.CPUPercent(); err == nil {
		h.ProcessCPU = pct
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		h.ProcessRSS = mem.RSS
	}
	return h
}
