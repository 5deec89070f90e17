package service_test

import (
	"context"
	"errors"

	"github.com/unclebandit/patoche-etl/internal/model"
	"github.com/unclebandit/patoche-etl/internal/repository"
)

// MockStore keeps committed rows in memory. Writes made through a unit of
// work only become visible to later units after Commit.
type MockStore struct {
	Customers []model.Customer
	Orders    []model.Order
	nextID    int
	Commits   int
	Rollbacks int

	Savepoints         int
	SavepointRollbacks int

	BeginErr  error
	CreateErr error // returned by every Create
	CommitErr error
}

func (s *MockStore) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	if s.BeginErr != nil {
		return nil, s.BeginErr
	}
	u := &mockUnit{store: s, customers: append([]model.Customer(nil), s.Customers...), orders: append([]model.Order(nil), s.Orders...)}
	return u, nil
}

type mockUnit struct {
	store     *MockStore
	customers []model.Customer
	orders    []model.Order
	done      bool
}

func (u *mockUnit) Customers() repository.CustomerRepositoryInterface { return (*mockCustomers)(u) }
func (u *mockUnit) Orders() repository.OrderRepositoryInterface       { return (*mockOrders)(u) }

// InSavepoint drops whatever fn wrote when it fails, like ROLLBACK TO SAVEPOINT.
func (u *mockUnit) InSavepoint(ctx context.Context, fn func() error) error {
	u.store.Savepoints++
	nc, no := len(u.customers), len(u.orders)
	if err := fn(); err != nil {
		u.customers, u.orders = u.customers[:nc], u.orders[:no]
		u.store.SavepointRollbacks++
		return err
	}
	return nil
}

func (u *mockUnit) Commit() error {
	if u.done {
		return errors.New("transaction already finished")
	}
	u.done = true
	if u.store.CommitErr != nil {
		return u.store.CommitErr
	}
	u.store.Customers = u.customers
	u.store.Orders = u.orders
	u.store.Commits++
	return nil
}

func (u *mockUnit) Rollback() error {
	if u.done {
		return errors.New("transaction already finished")
	}
	u.done = true
	u.store.Rollbacks++
	return nil
}

type mockCustomers mockUnit

func (m *mockCustomers) Exists(ctx context.Context, c *model.Customer) (bool, error) {
	for _, x := range m.customers {
		x.ID = 0
		if x == *c {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCustomers) ExistsByID(ctx context.Context, id int) (bool, error) {
	for _, x := range m.customers {
		if x.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCustomers) Create(ctx context.Context, c *model.Customer) error {
	if m.store.CreateErr != nil {
		return m.store.CreateErr
	}
	for _, x := range m.customers {
		if x.Email == c.Email {
			return errors.New("UNIQUE constraint failed: customers.email")
		}
	}
	m.store.nextID++
	c.ID = m.store.nextID
	m.customers = append(m.customers, *c)
	return nil
}

type mockOrders mockUnit

func (m *mockOrders) Exists(ctx context.Context, o *model.Order) (bool, error) {
	for _, x := range m.orders {
		if x.CustomerID == o.CustomerID && x.OrderDate == o.OrderDate && x.Amount == o.Amount {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOrders) Create(ctx context.Context, o *model.Order) error {
	if m.store.CreateErr != nil {
		return m.store.CreateErr
	}
	m.store.nextID++
	o.ID = m.store.nextID
	m.orders = append(m.orders, *o)
	return nil
}

var customerHeader = []string{"Client_ID", "Nom", "Prenom", "Email", "Telephone", "Date_Naissance", "Adresse", "Consentement_Marketing"}

var orderHeader = []string{"Commande_ID", "Client_ID", "Date_Commande", "Montant_Commande"}

func customerRow(last, first, email, phone, birth, address, consent string) []string {
	return []string{"0", last, first, email, phone, birth, address, consent}
}

func orderRow(customerID, date, amount string) []string {
	return []string{"0", customerID, date, amount}
}
