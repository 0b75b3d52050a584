package domain

import "context"

// Customer is the slice of the user-service customer record the banking
// core needs. The directory itself is an external collaborator.
type Customer struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id int64) (Customer, error)
}
