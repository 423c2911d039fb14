package main

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

// selfStats returns a handle on the current process; printSelfStats reads
// its RSS and accumulated CPU time from it once analysis has finished.
func selfStats() (*process.Process, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("reading self process stats: %w", err)
	}
	return p, nil
}

// printSelfStats reports p's current RSS and accumulated CPU time.
func printSelfStats(p *process.Process) {
	mem, err := p.MemoryInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: memory info: %v\n", err)
		return
	}
	times, err := p.Times()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: cpu times: %v\n", err)
		return
	}
	fmt.Printf("\n%s\n", headingStyle.Render("Self stats"))
	fmt.Printf("  rss: %.2f MiB\n", float64(mem.RSS)/(1024*1024))
	fmt.Printf("  cpu: %.3fs user, %.3fs system\n", times.User, times.System)
}
