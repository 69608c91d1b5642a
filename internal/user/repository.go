package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/recordstore"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, u *User) error
	// Delete removes the primary record and the email index in one
	// transaction.
	Delete(ctx context.Context, id string) error
}

type recordRepository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &recordRepository{store: store}
}

func marshal(u *User) ([]byte, error) {
	return json.Marshal(record{User: *u, PasswordHash: u.PasswordHash})
}

func unmarshal(data []byte) (*User, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling user record: %w", err)
	}
	u := rec.User
	u.PasswordHash = rec.PasswordHash
	return &u, nil
}

func (r *recordRepository) Create(ctx context.Context, u *User) error {
	data, err := marshal(u)
	if err != nil {
		return err
	}

	// user record and email index are written together
	return r.store.Update(ctx, func(txn recordstore.Txn) error {
		if err := txn.Set(Key(u.ID), data); err != nil {
			return err
		}
		return txn.Set(EmailKey(u.Email), []byte(u.ID))
	})
}

func (r *recordRepository) GetByID(ctx context.Context, id string) (*User, error) {
	data, err := r.store.Get(ctx, Key(id))
	if err != nil {
		if errors.Is(err, recordstore.ErrKeyNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return unmarshal(data)
}

func (r *recordRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	idData, err := r.store.Get(ctx, EmailKey(email))
	if err != nil {
		if errors.Is(err, recordstore.ErrKeyNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, string(idData))
}

func (r *recordRepository) List(ctx context.Context) ([]*User, error) {
	values, err := r.store.ScanPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(values))
	for _, data := range values {
		u, err := unmarshal(data)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *recordRepository) Update(ctx context.Context, u *User) error {
	data, err := marshal(u)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, Key(u.ID), data)
}

func (r *recordRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(txn recordstore.Txn) error {
		data, err := txn.Get(Key(id))
		if err != nil {
			if errors.Is(err, recordstore.ErrKeyNotFound) {
				return internal.ErrUserNotFound
			}
			return err
		}

		u, err := unmarshal(data)
		if err != nil {
			return err
		}

		if err := txn.Delete(Key(id)); err != nil {
			return err
		}
		return txn.Delete(EmailKey(u.Email))
	})
}
