package recordstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenseflow/expenseflow/internal/recordstore"
)

func TestRecordStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RecordStore Suite")
}

// behaves runs the Store contract against any backend.
func behaves(newStore func() recordstore.Store) {
	var (
		store recordstore.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		store = newStore()
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("round-trips a record", func() {
		Expect(store.Set(ctx, "user:1", []byte(`{"id":"1"}`))).To(Succeed())

		value, err := store.Get(ctx, "user:1")
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal([]byte(`{"id":"1"}`)))
	})

	It("returns ErrKeyNotFound for a missing key", func() {
		_, err := store.Get(ctx, "user:missing")
		Expect(errors.Is(err, recordstore.ErrKeyNotFound)).To(BeTrue())
	})

	It("overwrites an existing record", func() {
		Expect(store.Set(ctx, "company:main", []byte("a"))).To(Succeed())
		Expect(store.Set(ctx, "company:main", []byte("b"))).To(Succeed())

		value, err := store.Get(ctx, "company:main")
		Expect(err).NotTo(HaveOccurred())
		Expect(value).To(Equal([]byte("b")))
	})

	It("deletes a record", func() {
		Expect(store.Set(ctx, "user:1", []byte("x"))).To(Succeed())
		Expect(store.Delete(ctx, "user:1")).To(Succeed())

		_, err := store.Get(ctx, "user:1")
		Expect(errors.Is(err, recordstore.ErrKeyNotFound)).To(BeTrue())
	})

	It("tolerates deleting a missing key", func() {
		Expect(store.Delete(ctx, "user:never-existed")).To(Succeed())
	})

	It("scans only records under the prefix", func() {
		Expect(store.Set(ctx, "expense:1", []byte("e1"))).To(Succeed())
		Expect(store.Set(ctx, "expense:2", []byte("e2"))).To(Succeed())
		Expect(store.Set(ctx, "approval:1", []byte("a1"))).To(Succeed())

		values, err := store.ScanPrefix(ctx, "expense:")
		Expect(err).NotTo(HaveOccurred())
		Expect(values).To(ConsistOf([]byte("e1"), []byte("e2")))
	})

	It("returns an empty scan for an unused prefix", func() {
		values, err := store.ScanPrefix(ctx, "rule:")
		Expect(err).NotTo(HaveOccurred())
		Expect(values).To(BeEmpty())
	})

	Describe("Update", func() {
		It("commits multi-key writes together", func() {
			err := store.Update(ctx, func(txn recordstore.Txn) error {
				if err := txn.Set("expense:1", []byte("exp")); err != nil {
					return err
				}
				return txn.Set("approval:1", []byte("step"))
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = store.Get(ctx, "expense:1")
			Expect(err).NotTo(HaveOccurred())
			_, err = store.Get(ctx, "approval:1")
			Expect(err).NotTo(HaveOccurred())
		})

		It("discards all writes when fn fails", func() {
			boom := errors.New("boom")
			err := store.Update(ctx, func(txn recordstore.Txn) error {
				if err := txn.Set("expense:1", []byte("exp")); err != nil {
					return err
				}
				return boom
			})
			Expect(errors.Is(err, boom)).To(BeTrue())

			_, err = store.Get(ctx, "expense:1")
			Expect(errors.Is(err, recordstore.ErrKeyNotFound)).To(BeTrue())
		})

		It("reads through the transaction", func() {
			Expect(store.Set(ctx, "user:1", []byte("alice"))).To(Succeed())

			err := store.Update(ctx, func(txn recordstore.Txn) error {
				value, err := txn.Get("user:1")
				if err != nil {
					return err
				}
				if err := txn.Set("user:2", value); err != nil {
					return err
				}
				return txn.Delete("user:1")
			})
			Expect(err).NotTo(HaveOccurred())

			value, err := store.Get(ctx, "user:2")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal([]byte("alice")))

			_, err = store.Get(ctx, "user:1")
			Expect(errors.Is(err, recordstore.ErrKeyNotFound)).To(BeTrue())
		})
	})

	It("pings", func() {
		Expect(store.Ping(ctx)).To(Succeed())
	})
}

var _ = Describe("MemoryStore", func() {
	behaves(func() recordstore.Store {
		return recordstore.NewMemoryStore()
	})
})

var _ = Describe("BoltStore", func() {
	behaves(func() recordstore.Store {
		path := filepath.Join(GinkgoT().TempDir(), "records.db")
		store, err := recordstore.NewBoltStore(path)
		Expect(err).NotTo(HaveOccurred())
		return store
	})
})
