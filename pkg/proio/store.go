package proio

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sndfw-protocol/sndfw-go/pkg/quadlet"
	"github.com/sndfw-protocol/sndfw-go/pkg/transport"
)

// storeConfigOffset is the write-only trigger register that makes the
// device persist its current settings to flash.
const storeConfigOffset = 0x1b0

// StoreConfig persists the device's current settings. The trigger
// register fires on any write; a random nonce guarantees the word
// differs from whatever was written last, so the hardware never
// ignores the request as a repeat.
func StoreConfig(bus transport.Bus, timeout time.Duration) error {
	buf := make([]byte, quadlet.Size)
	quadlet.Put(buf, rand.Uint32())
	if err := bus.Write(storeConfigOffset, buf, timeout); err != nil {
		return fmt.Errorf("proio: store config: %w", err)
	}
	return nil
}
