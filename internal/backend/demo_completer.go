package backend

import (
	"context"
	"math/rand/v2"
	"time"
)

// DemoDelay mimics provider latency in the demo completer.
const DemoDelay = 800 * time.Millisecond

var demoTips = []string{
	"**Signal integrity first.** Start with short, direct traces for high-speed nets and keep return paths continuous. Then practice impedance-controlled routing on a small USB or SPI board.",
	"**Power distribution.** Learn to place decoupling capacitors as close as possible to IC power pins, one 100nF per pin plus a bulk capacitor per rail. Follow up with a buck converter layout project.",
	"**Ground planes and EMI.** Use a solid ground plane on a 4-layer stack and avoid splitting it under signal traces. A good next step is an EMI review of an existing design.",
	"**Differential pairs.** Route pairs with matched length and constant spacing, and keep them away from noisy clocks. Try routing a USB 2.0 pair before moving to Ethernet or HDMI.",
	"**Component placement.** Group parts by function, keep hot components away from sensitive analog sections, and leave room for thermal relief. Practice on a motor driver board before an advanced power design.",
}

// DemoCompleter returns canned PCB learning tips without calling a provider.
type DemoCompleter struct {
	delay time.Duration
}

// NewDemoCompleter creates a demo completer that waits delay before replying.
func NewDemoCompleter(delay time.Duration) *DemoCompleter {
	return &DemoCompleter{delay: delay}
}

// Complete implements Completer.
func (d *DemoCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return demoTips[rand.IntN(len(demoTips))], nil
}
