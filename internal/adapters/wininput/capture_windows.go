//go:build windows

package wininput

import (
	"context"
	"fmt"
	"time"
)

// CaptureNextKeyCode polls GetAsyncKeyState until a key or button that was
// up goes down, and returns its virtual-key code.
func CaptureNextKeyCode(ctx context.Context) (uint32, error) {
	state := make(map[uint32]bool, len(captureVKs))
	for _, vk := range captureVKs {
		state[vk] = isKeyDown(vk)
	}

	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()

	for {
		for _, vk := range captureVKs {
			down := isKeyDown(vk)
			wasDown := state[vk]
			state[vk] = down
			if down && !wasDown {
				return vk, nil
			}
		}

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("waiting for key/button input: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func isKeyDown(vk uint32) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(state)&0x8000 != 0
}
