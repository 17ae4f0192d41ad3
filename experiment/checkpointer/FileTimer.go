package checkpointer

import (
	"fmt"
	"time"
)

// FileTimer returns a naming function that suffixes filename with the
// Unix timestamp in nanoseconds at which it is called, so that every
// checkpoint lands in a distinct file without any counter state.
func FileTimer(filename, extension string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", filename, time.Now().UnixNano(),
			extension)
	}
}
