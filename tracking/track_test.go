package tracking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/barbersim/shop"
)

var _ = Describe("Track", func() {
	var (
		mockCtrl *gomock.Controller
		domain   *shop.HookableBase
		tracker  *MockTracker
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		domain = shop.NewHookableBase()
		tracker = NewMockTracker(mockCtrl)

		Track(domain, tracker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should forward arrivals", func() {
		c := shop.Customer{ID: 1, Name: "Alice"}
		tracker.EXPECT().CustomerArrived(c)

		domain.InvokeHook(shop.HookCtx{
			Domain: domain,
			Pos:    shop.HookPosCustomerArrive,
			Item:   c,
		})
	})

	It("should forward service starts with the barber", func() {
		c := shop.Customer{ID: 1}
		b := shop.Barber{ID: 2}
		tracker.EXPECT().ServiceStarted(c, b)

		domain.InvokeHook(shop.HookCtx{
			Domain: domain,
			Pos:    shop.HookPosServiceStart,
			Item:   c,
			Detail: b,
		})
	})

	It("should forward completions with the barber", func() {
		c := shop.Customer{ID: 1}
		b := shop.Barber{ID: 2}
		tracker.EXPECT().ServiceCompleted(c, b)

		domain.InvokeHook(shop.HookCtx{
			Domain: domain,
			Pos:    shop.HookPosServiceComplete,
			Item:   c,
			Detail: b,
		})
	})

	It("should forward rejections with the reason", func() {
		c := shop.Customer{ID: 1}
		tracker.EXPECT().CustomerRejected(c, shop.RejectEvicted)

		domain.InvokeHook(shop.HookCtx{
			Domain: domain,
			Pos:    shop.HookPosCustomerReject,
			Item:   c,
			Detail: shop.RejectEvicted,
		})
	})

	It("should ignore unrelated hook positions", func() {
		domain.InvokeHook(shop.HookCtx{
			Domain: domain,
			Pos:    &shop.HookPos{Name: "Unrelated"},
		})
	})

	It("should refuse to attach the same tracker twice", func() {
		Expect(func() {
			Track(domain, tracker)
		}).To(Panic())
	})

	It("should allow a second, different tracker", func() {
		other := NewMockTracker(mockCtrl)
		Track(domain, other)

		c := shop.Customer{ID: 1}
		tracker.EXPECT().CustomerArrived(c)
		other.EXPECT().CustomerArrived(c)

		domain.InvokeHook(shop.HookCtx{
			Domain: domain,
			Pos:    shop.HookPosCustomerArrive,
			Item:   c,
		})
	})
})
