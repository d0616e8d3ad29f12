package shop

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("ArrivalGenerator", func() {
	var (
		mockCtrl *gomock.Controller
		src      *MockRandSource
		gen      *ArrivalGenerator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		src = NewMockRandSource(mockCtrl)
		gen = NewArrivalGenerator(src)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should never fire at rate zero", func() {
		Expect(gen.ShouldArrive(0, 1)).To(BeFalse())
	})

	It("should never fire on a zero-length step", func() {
		Expect(gen.ShouldArrive(60, 0)).To(BeFalse())
	})

	It("should always fire once the step covers the rate", func() {
		Expect(gen.ShouldArrive(60, 1)).To(BeTrue())
		Expect(gen.ShouldArrive(120, 1)).To(BeTrue())
	})

	It("should draw when the probability is fractional", func() {
		src.EXPECT().Float64().Return(0.49)
		Expect(gen.ShouldArrive(30, 1)).To(BeTrue())

		src.EXPECT().Float64().Return(0.5)
		Expect(gen.ShouldArrive(30, 1)).To(BeFalse())
	})

	It("should scale the probability with the step length", func() {
		src.EXPECT().Float64().Return(0.09)
		Expect(gen.ShouldArrive(60, 0.1)).To(BeTrue())

		src.EXPECT().Float64().Return(0.11)
		Expect(gen.ShouldArrive(60, 0.1)).To(BeFalse())
	})
})
