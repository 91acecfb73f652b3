package domain

import "time"

type Customer struct {
	ID        string
	Name      string
	Email     string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
