package corpus

import "runtime"

func numCPU() int { return runtime.NumCPU() }
