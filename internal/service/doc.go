// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// For categories the pipeline is: validate the request, build a new entity
// (CategoryFactory) or apply the request to a stored one (CategoryModifier),
// then persist through store.CategoryStore and emit a lifecycle event.
// Validation failures never reach the factory or modifier; they come back as
// a Result carrying the violations.
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
