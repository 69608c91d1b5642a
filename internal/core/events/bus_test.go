package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenseflow/expenseflow/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	It("fans a published event out to every subscriber", func() {
		var calls int32
		handler := func(_ context.Context, _ events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}
		bus.Subscribe(events.TypeExpenseSubmitted, handler)
		bus.Subscribe(events.TypeExpenseSubmitted, handler)

		bus.Publish(context.Background(), events.NewExpenseSubmitted("e1", "u1", 10, "USD"))

		Eventually(func() int32 { return atomic.LoadInt32(&calls) }).Should(Equal(int32(2)))
	})

	It("does not deliver events of other types", func() {
		var calls int32
		bus.Subscribe(events.TypeApprovalDecided, func(_ context.Context, _ events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})

		Expect(bus.PublishSync(context.Background(), events.NewExpenseSubmitted("e1", "u1", 10, "USD"))).To(Succeed())
		Expect(atomic.LoadInt32(&calls)).To(BeZero())
	})

	It("carries the workflow payload", func() {
		var got events.Event
		bus.Subscribe(events.TypeApprovalDecided, func(_ context.Context, event events.Event) error {
			got = event
			return nil
		})

		event := events.NewApprovalDecided("step-1", "exp-1", "manager-1", "approved")
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())

		payload, ok := got.Payload().(map[string]interface{})
		Expect(ok).To(BeTrue())
		Expect(payload["expense_id"]).To(Equal("exp-1"))
		Expect(payload["status"]).To(Equal("approved"))
	})

	It("returns the first handler failure from PublishSync", func() {
		boom := errors.New("boom")
		bus.Subscribe(events.TypeExpenseSubmitted, func(_ context.Context, _ events.Event) error {
			return boom
		})

		err := bus.PublishSync(context.Background(), events.NewExpenseSubmitted("e1", "u1", 10, "USD"))
		Expect(errors.Is(err, boom)).To(BeTrue())
	})
})
