package banking

import (
	"context"
	"strings"

	"go.llib.dev/fpkit/pkg/optional"
	"go.llib.dev/fpkit/pkg/seqkit"
)

// Balances answers questions about a customer with lookups that may come back empty.
type Balances struct {
	Customers CustomerLookup
	Accounts  AccountLookup
}

// Balance returns the balance of the customer's account.
// It is 0 when the id, the customer, its account number, the account or its balance is absent.
func (b Balances) Balance(ctx context.Context, id optional.Value[CustomerID]) float64 {
	account := optional.FlatMap(b.accountNumber(ctx, id), func(number string) optional.Value[Account] {
		return b.Accounts.LookupAccount(ctx, number)
	})
	return optional.FlatMap(account, Account.balance).OrElse(0)
}

// AccountNumber returns the account number of the customer, or an empty string when it is absent.
func (b Balances) AccountNumber(ctx context.Context, id optional.Value[CustomerID]) string {
	return b.accountNumber(ctx, id).OrElse("")
}

func (b Balances) accountNumber(ctx context.Context, id optional.Value[CustomerID]) optional.Value[string] {
	customer := optional.FlatMap(id, func(id CustomerID) optional.Value[Customer] {
		return b.Customers.LookupCustomer(ctx, id)
	})
	return optional.FlatMap(customer, Customer.accountNumber)
}

func (c Customer) accountNumber() optional.Value[string] { return c.AccountNumber }

func (a Account) balance() optional.Value[float64] { return a.Balance }

// FirstAccountNumberWithPrefix returns the first account number in customers that starts with prefix.
// Customers without an account number are skipped.
// The result is an empty string when nothing matches.
func FirstAccountNumberWithPrefix(customers []Customer, prefix string) string {
	numbers := seqkit.FlatMap(seqkit.Slice(customers), func(c Customer) *seqkit.Seq[string] {
		return seqkit.FromOptional(c.AccountNumber)
	})
	first, err := numbers.Filter(func(number string) bool {
		return strings.HasPrefix(number, prefix)
	}).First()
	if err != nil {
		return ""
	}
	return first.OrElse("")
}
