// Package banking resolves customer balances and account numbers through pipelines of absent or failing lookups.
//
// Two flavours are provided.
// Balances chains lookups that may find nothing (optional.Value),
// Ledger chains lookups that may fail with a reason (either.Value).
// Both fall back to a default result instead of failing.
package banking

import (
	"context"

	"go.llib.dev/fpkit/pkg/either"
	"go.llib.dev/fpkit/pkg/optional"
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	ErrCustomerNotFound errorkit.Error = "banking: customer not found"
	ErrAccountNotFound  errorkit.Error = "banking: account not found"
	ErrNoAccountNumber  errorkit.Error = "banking: customer has no account number"
)

type CustomerID int64

type Customer struct {
	ID CustomerID
	// AccountNumber is absent when the customer has no account.
	AccountNumber optional.Value[string]
}

type Account struct {
	Number string
	// Balance is absent when the account has no history.
	Balance optional.Value[float64]
}

type CustomerLookup interface {
	LookupCustomer(ctx context.Context, id CustomerID) optional.Value[Customer]
}

type CustomerLookupFunc func(ctx context.Context, id CustomerID) optional.Value[Customer]

func (fn CustomerLookupFunc) LookupCustomer(ctx context.Context, id CustomerID) optional.Value[Customer] {
	return fn(ctx, id)
}

type AccountLookup interface {
	LookupAccount(ctx context.Context, number string) optional.Value[Account]
}

type AccountLookupFunc func(ctx context.Context, number string) optional.Value[Account]

func (fn AccountLookupFunc) LookupAccount(ctx context.Context, number string) optional.Value[Account] {
	return fn(ctx, number)
}

// CustomerRepository finds customers, and tells why when it can't.
type CustomerRepository interface {
	GetCustomer(ctx context.Context, id CustomerID) either.Value[error, Customer]
}

type CustomerRepositoryFunc func(ctx context.Context, id CustomerID) either.Value[error, Customer]

func (fn CustomerRepositoryFunc) GetCustomer(ctx context.Context, id CustomerID) either.Value[error, Customer] {
	return fn(ctx, id)
}

// AccountService finds accounts, and tells why when it can't.
type AccountService interface {
	GetAccount(ctx context.Context, number string) either.Value[error, Account]
}

type AccountServiceFunc func(ctx context.Context, number string) either.Value[error, Account]

func (fn AccountServiceFunc) GetAccount(ctx context.Context, number string) either.Value[error, Account] {
	return fn(ctx, number)
}
