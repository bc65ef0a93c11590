package banking

import (
	"context"

	"go.llib.dev/fpkit/pkg/either"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

// Ledger answers questions about a customer with lookups that report why they failed.
// The reason of a failure is logged, and the answer falls back to its default.
type Ledger struct {
	Customers CustomerRepository
	Accounts  AccountService
}

// Balance returns the balance of the customer's account.
// It is 0 when any lookup fails or when the account has no balance.
func (l Ledger) Balance(ctx context.Context, id CustomerID) float64 {
	account := either.FlatMap(l.accountNumber(ctx, id), func(number string) either.Value[error, Account] {
		return l.Accounts.GetAccount(ctx, number)
	})
	return either.Fold(account,
		func(err error) float64 {
			logger.Debug(ctx, "ledger balance fallback",
				logging.Field("customer_id", int64(id)),
				logging.ErrField(err))
			return 0
		},
		func(a Account) float64 { return a.Balance.OrElse(0) })
}

// AccountNumber returns the account number of the customer, or an empty string when the lookup fails.
func (l Ledger) AccountNumber(ctx context.Context, id CustomerID) string {
	return either.Fold(l.accountNumber(ctx, id),
		func(err error) string {
			logger.Debug(ctx, "ledger account number fallback",
				logging.Field("customer_id", int64(id)),
				logging.ErrField(err))
			return ""
		},
		func(number string) string { return number })
}

func (l Ledger) accountNumber(ctx context.Context, id CustomerID) either.Value[error, string] {
	return either.FlatMap(l.Customers.GetCustomer(ctx, id), func(c Customer) either.Value[error, string] {
		number, ok := c.AccountNumber.Get()
		if !ok {
			return either.Left[error, string](ErrNoAccountNumber.F("customer id: %d", c.ID))
		}
		return either.Right[error](number)
	})
}
