package tracking

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/barbersim/shop"
)

// Track lets the tracker collect events from a domain. Attaching the same
// tracker to the same domain twice is a programming error.
func Track(domain shop.Hookable, tracker Tracker) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*trackHook)
		if ok && hook.t == tracker {
			panic(fmt.Sprintf(
				"domain already has tracker %s",
				reflect.TypeOf(tracker)))
		}
	}

	h := trackHook{t: tracker}
	domain.AcceptHook(&h)
}

// A trackHook translates hook invocations into Tracker calls.
type trackHook struct {
	t Tracker
}

func (h *trackHook) Func(ctx shop.HookCtx) {
	switch ctx.Pos {
	case shop.HookPosCustomerArrive:
		h.t.CustomerArrived(ctx.Item.(shop.Customer))
	case shop.HookPosServiceStart:
		h.t.ServiceStarted(
			ctx.Item.(shop.Customer), ctx.Detail.(shop.Barber))
	case shop.HookPosServiceComplete:
		h.t.ServiceCompleted(
			ctx.Item.(shop.Customer), ctx.Detail.(shop.Barber))
	case shop.HookPosCustomerReject:
		h.t.CustomerRejected(
			ctx.Item.(shop.Customer), ctx.Detail.(shop.RejectReason))
	}
}
