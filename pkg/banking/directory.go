package banking

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"go.llib.dev/fpkit/pkg/either"
	"go.llib.dev/fpkit/pkg/optional"
	"go.llib.dev/fpkit/pkg/seqkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// Directory is an in memory customer and account store.
// It serves both the optional and the either flavoured lookups.
// The zero value is ready to use.
type Directory struct {
	mutex     sync.RWMutex
	customers map[CustomerID]Customer
	accounts  map[string]Account
}

var (
	_ CustomerLookup     = (*Directory)(nil)
	_ AccountLookup      = (*Directory)(nil)
	_ CustomerRepository = (*Directory)(nil)
	_ AccountService     = (*Directory)(nil)
)

// SaveCustomer creates or replaces the customer with the same ID.
func (d *Directory) SaveCustomer(ctx context.Context, c Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.customers == nil {
		d.customers = make(map[CustomerID]Customer)
	}
	d.customers[c.ID] = c
	logger.Debug(ctx, "directory customer saved", logging.Field("customer_id", int64(c.ID)))
	return nil
}

// SaveAccount creates or replaces the account with the same number.
func (d *Directory) SaveAccount(ctx context.Context, a Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.accounts == nil {
		d.accounts = make(map[string]Account)
	}
	d.accounts[a.Number] = a
	logger.Debug(ctx, "directory account saved", logging.Field("account_number", a.Number))
	return nil
}

func (d *Directory) LookupCustomer(ctx context.Context, id CustomerID) optional.Value[Customer] {
	return either.RightOptional(d.GetCustomer(ctx, id))
}

func (d *Directory) LookupAccount(ctx context.Context, number string) optional.Value[Account] {
	return either.RightOptional(d.GetAccount(ctx, number))
}

func (d *Directory) GetCustomer(ctx context.Context, id CustomerID) either.Value[error, Customer] {
	if err := ctx.Err(); err != nil {
		return either.Left[error, Customer](err)
	}
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	c, ok := d.customers[id]
	if !ok {
		return either.Left[error, Customer](ErrCustomerNotFound.F("id: %d", id))
	}
	return either.Right[error](c)
}

func (d *Directory) GetAccount(ctx context.Context, number string) either.Value[error, Account] {
	if err := ctx.Err(); err != nil {
		return either.Left[error, Account](err)
	}
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	a, ok := d.accounts[number]
	if !ok {
		return either.Left[error, Account](ErrAccountNotFound.F("number: %s", number))
	}
	return either.Right[error](a)
}

// Customers returns the customers known at the time of the call, ordered by their ID.
// Consuming the sequence fails with the context's error once ctx is done.
func (d *Directory) Customers(ctx context.Context) *seqkit.Seq[Customer] {
	d.mutex.RLock()
	var snapshot = make([]Customer, 0, len(d.customers))
	for _, c := range d.customers {
		snapshot = append(snapshot, c)
	}
	d.mutex.RUnlock()
	slices.SortFunc(snapshot, func(a, b Customer) int { return cmp.Compare(a.ID, b.ID) })

	return seqkit.FromErrIter[Customer](func(yield func(Customer, error) bool) {
		for _, c := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(Customer{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	})
}
