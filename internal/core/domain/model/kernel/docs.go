// Package kernel provides core domain primitives and utilities for the shipping system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Dimensions: A value object for package geometry in centimeters with volume derivation
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
//
// Monetary and weight figures throughout the domain use shopspring/decimal so
// that rating arithmetic (rate-per-kilogram multiplication, 0.5 kg round-up)
// stays exact.
package kernel
