// Package repository implements PostgreSQL-backed storage for profiles,
// events, messages and the product catalog.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db      *sqlx.DB
	profile ProfileRepository
	event   EventRepository
	message MessageRepository
	product ProductRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:      db,
		profile: NewProfileRepository(db),
		event:   NewEventRepository(db),
		message: NewMessageRepository(db),
		product: NewProductRepository(db),
	}
}

func (r *repositoryImpl) Profile() ProfileRepository {
	return r.profile
}

func (r *repositoryImpl) Event() EventRepository {
	return r.event
}

func (r *repositoryImpl) Message() MessageRepository {
	return r.message
}

func (r *repositoryImpl) Product() ProductRepository {
	return r.product
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
