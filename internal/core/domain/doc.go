// Package domain defines the core domain models for custrack.
//
// Domain models are pure value objects mirroring the customer-tracker
// API wire shapes, without any IO dependencies or framework coupling.
// This package contains:
//
//   - User: Authenticated user identity
//   - Customer: Customer records and list projections
//   - Track: Follow-up interaction records
//   - Errors: Domain-specific error definitions
package domain
