package app

import (
	"runtime"
)

// GetWorkerCount defaults to the number of CPUs unless WORKERS is set.
func GetWorkerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.NumCPU()
}
