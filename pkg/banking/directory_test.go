package banking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"go.llib.dev/fpkit/pkg/banking"
	"go.llib.dev/fpkit/pkg/either"
	"go.llib.dev/fpkit/pkg/optional"
	"go.llib.dev/fpkit/pkg/seqkit"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func TestDirectory(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		ctx     = testcase.Let(s, func(t *testcase.T) context.Context { return context.Background() })
		subject = testcase.Let(s, func(t *testcase.T) *banking.Directory { return &banking.Directory{} })
		account = testcase.Let(s, func(t *testcase.T) banking.Account {
			return banking.Account{
				Number:  randomdata.SillyName(),
				Balance: optional.Of(float64(randomdata.Number(0, 100000))),
			}
		})
	)

	s.Describe("GetCustomer", func(s *testcase.Spec) {
		act := func(t *testcase.T, id banking.CustomerID) either.Value[error, banking.Customer] {
			return subject.Get(t).GetCustomer(ctx.Get(t), id)
		}

		s.Then("an unknown customer is reported as not found", func(t *testcase.T) {
			err := either.LeftOptional(act(t, 1)).OrElse(nil)
			assert.ErrorIs(t, err, banking.ErrCustomerNotFound)
		})

		s.When("the customer was saved", func(s *testcase.Spec) {
			customer := testcase.Let(s, func(t *testcase.T) banking.Customer {
				return banking.Customer{ID: banking.CustomerID(t.Random.IntBetween(1, 1000))}
			})
			s.Before(func(t *testcase.T) {
				assert.NoError(t, subject.Get(t).SaveCustomer(ctx.Get(t), customer.Get(t)))
			})

			s.Then("it is found", func(t *testcase.T) {
				assert.Equal(t, optional.Of(customer.Get(t)), either.RightOptional(act(t, customer.Get(t).ID)))
				assert.Equal(t, optional.Of(customer.Get(t)), subject.Get(t).LookupCustomer(ctx.Get(t), customer.Get(t).ID))
			})
		})

		s.When("the context is cancelled", func(s *testcase.Spec) {
			ctx.Let(s, func(t *testcase.T) context.Context {
				c, cancel := context.WithCancel(context.Background())
				cancel()
				return c
			})

			s.Then("the context error is the reason", func(t *testcase.T) {
				err := either.LeftOptional(act(t, 1)).OrElse(nil)
				assert.ErrorIs(t, err, context.Canceled)
			})
		})
	})

	s.Describe("GetAccount", func(s *testcase.Spec) {
		s.Then("an unknown account is reported as not found", func(t *testcase.T) {
			got := subject.Get(t).GetAccount(ctx.Get(t), account.Get(t).Number)
			assert.ErrorIs(t, either.LeftOptional(got).OrElse(nil), banking.ErrAccountNotFound)
			assert.True(t, subject.Get(t).LookupAccount(ctx.Get(t), account.Get(t).Number).IsEmpty())
		})

		s.Then("a saved account is found by its number", func(t *testcase.T) {
			assert.NoError(t, subject.Get(t).SaveAccount(ctx.Get(t), account.Get(t)))
			got := subject.Get(t).GetAccount(ctx.Get(t), account.Get(t).Number)
			assert.Equal(t, optional.Of(account.Get(t)), either.RightOptional(got))
		})
	})

	s.Describe("Customers", func(s *testcase.Spec) {
		s.Then("customers are listed by their id", func(t *testcase.T) {
			for _, id := range []banking.CustomerID{3, 1, 2} {
				assert.NoError(t, subject.Get(t).SaveCustomer(ctx.Get(t), banking.Customer{ID: id}))
			}
			ids, err := seqkit.Map(subject.Get(t).Customers(ctx.Get(t)), func(c banking.Customer) banking.CustomerID {
				return c.ID
			}).Collect()
			assert.NoError(t, err)
			assert.Equal(t, []banking.CustomerID{1, 2, 3}, ids)
		})

		s.Then("saving a customer again replaces it", func(t *testcase.T) {
			assert.NoError(t, subject.Get(t).SaveCustomer(ctx.Get(t), banking.Customer{ID: 1}))
			assert.NoError(t, subject.Get(t).SaveCustomer(ctx.Get(t), banking.Customer{ID: 1, AccountNumber: optional.Of("NO1")}))
			n, err := subject.Get(t).Customers(ctx.Get(t)).Count()
			assert.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, "NO1", banking.FirstAccountNumberWithPrefix(mustCollect(t, subject.Get(t).Customers(ctx.Get(t))), "NO"))
		})

		s.Then("a cancelled context fails the consumption", func(t *testcase.T) {
			assert.NoError(t, subject.Get(t).SaveCustomer(ctx.Get(t), banking.Customer{ID: 1}))
			c, cancel := context.WithCancel(ctx.Get(t))
			seq := subject.Get(t).Customers(c)
			cancel()
			_, err := seq.Collect()
			assert.True(t, errors.Is(err, context.Canceled))
		})
	})

	s.Test("concurrent access", func(t *testcase.T) {
		var (
			dir = subject.Get(t)
			wg  sync.WaitGroup
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := banking.CustomerID(i)
				_ = dir.SaveCustomer(context.Background(), banking.Customer{ID: id})
				_ = dir.GetCustomer(context.Background(), id)
			}()
		}
		wg.Wait()
		n, err := dir.Customers(ctx.Get(t)).Count()
		assert.NoError(t, err)
		assert.Equal(t, 8, n)
	})

	s.Test("save with a cancelled context", func(t *testcase.T) {
		c, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, subject.Get(t).SaveCustomer(c, banking.Customer{ID: 1}), context.Canceled)
		assert.ErrorIs(t, subject.Get(t).SaveAccount(c, account.Get(t)), context.Canceled)
	})
}

func mustCollect[T any](tb testing.TB, s *seqkit.Seq[T]) []T {
	tb.Helper()
	vs, err := s.Collect()
	assert.NoError(tb, err)
	return vs
}
