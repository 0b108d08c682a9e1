// Package domain contains the core business entities of the category service:
// the Category record, the request payload used to create or modify it, and
// the sentinel errors shared by the layers above.
//
// Nothing in this package depends on storage or transport.
package domain
