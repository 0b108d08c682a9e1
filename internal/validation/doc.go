// Package validation checks inbound category payloads before they reach the
// factory or modifier and reports each failed field as a Violation with an
// English message.
//
// Rules are expressed as go-playground/validator tags on the request types;
// the bounds behind the custom "namelen" tag come from configuration.
package validation
