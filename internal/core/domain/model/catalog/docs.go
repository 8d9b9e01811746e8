// Package catalog holds read-side copies of data owned by the restaurant
// catalog service: branches and requested menu items. The routing core only
// reads these; all mutation happens in the external catalog.
package catalog
