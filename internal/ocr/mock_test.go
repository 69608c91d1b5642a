package ocr_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenseflow/expenseflow/internal/ocr"
)

func TestOCR(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OCR Module Suite")
}

var _ = Describe("Mock scanner", func() {
	var scanner *ocr.Mock

	BeforeEach(func() {
		scanner = ocr.NewMock()
	})

	It("fabricates a complete receipt regardless of input", func() {
		data, err := scanner.ScanReceipt(context.Background(), []byte("not an image"), "image/png")
		Expect(err).NotTo(HaveOccurred())

		Expect(data.Vendor).NotTo(BeEmpty())
		Expect(data.Description).To(ContainSubstring(data.Vendor))
		Expect(data.Category).To(BeElementOf(ocr.Categories))
	})

	It("keeps amounts and confidence within the plausible range", func() {
		for i := 0; i < 50; i++ {
			data, err := scanner.ScanReceipt(context.Background(), nil, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Amount).To(BeNumerically(">=", 10.0))
			Expect(data.Amount).To(BeNumerically("<=", 500.0))
			Expect(data.Confidence).To(BeNumerically(">=", 0.70))
			Expect(data.Confidence).To(BeNumerically("<", 1.0))
		}
	})

	It("dates receipts within the last 30 days", func() {
		data, err := scanner.ScanReceipt(context.Background(), nil, "")
		Expect(err).NotTo(HaveOccurred())

		parsed, err := time.Parse("2006-01-02", data.Date)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(BeTemporally("<=", time.Now()))
		Expect(parsed).To(BeTemporally(">", time.Now().AddDate(0, 0, -31)))
	})
})
