// Package addbookcopies implements inventory provisioning: an administrator adds copies of a title.
// An unknown book is created with the given copies; a known book gets a store-side increment of
// copies_available.
package addbookcopies
