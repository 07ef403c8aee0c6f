package system

import (
	"log"

	"github.com/shirou/gopsutil/v3/mem"
)

// WarnIfLowMemory logs a warning when an allocation of the given size would
// not fit into currently available memory. Long audio tracks can push the
// in-memory frame buffer into the hundreds of megabytes; synthesis still
// proceeds, this is advisory only.
func WarnIfLowMemory(bytes uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	if bytes > vm.Available {
		log.Printf("[!] Frame buffer needs %d MiB but only %d MiB available — expect heavy swapping",
			bytes/(1<<20), vm.Available/(1<<20))
	}
}
