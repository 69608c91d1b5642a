package ocr

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

var mockVendors = []string{
	"Uber",
	"Starbucks",
	"Marriott Hotel",
	"Delta Airlines",
	"Office Depot",
	"Shell Gas Station",
	"The Corner Bistro",
}

// Mock fabricates a plausible receipt without looking at the image. It
// stands in for real extraction wherever no Gemini key is configured.
type Mock struct {
	rng *rand.Rand
}

func NewMock() *Mock {
	return &Mock{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *Mock) ScanReceipt(_ context.Context, _ []byte, _ string) (*ReceiptData, error) {
	vendor := mockVendors[m.rng.Intn(len(mockVendors))]
	category := Categories[m.rng.Intn(len(Categories))]
	amount := float64(m.rng.Intn(49000)+1000) / 100 // 10.00 .. 500.00
	date := time.Now().AddDate(0, 0, -m.rng.Intn(30)).Format("2006-01-02")

	return &ReceiptData{
		Vendor:      vendor,
		Amount:      amount,
		Date:        date,
		Category:    category,
		Description: fmt.Sprintf("%s - %s", vendor, category),
		Confidence:  0.70 + m.rng.Float64()*0.29,
	}, nil
}
