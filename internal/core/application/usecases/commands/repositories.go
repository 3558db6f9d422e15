// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReferenceRepoFactory provides access to reference data within a transaction.
	ReferenceRepoFactory interface {
		ReferenceRepository() ports.ReferenceRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only touch order aggregates (transitions, board moves).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions for operations that read reference data while
	// modifying an order: creation and repricing resolve rate cards, packages
	// and branches in the same transaction that persists the order.
	UoW interface {
		TxManager
		OrderRepoFactory
		ReferenceRepoFactory
	}

	// UoWFactory creates new unit of work instances for pricing operations.
	UoWFactory interface {
		Create() UoW
	}
)
