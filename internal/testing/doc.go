// Package testing holds helpers shared by package tests: PostgreSQL
// integration setup and the inventory fixture.
//
// Import it under an alias, for example testhelpers.
package testing
