// Package postgres provides the PostgreSQL implementation of store.CategoryStore.
// It handles query execution, mapping between rows and domain categories, and
// translation of driver errors into the store's sentinel errors. Schema
// migrations live in the migrations subpackage.
package postgres
