// Package kernel provides the shared domain primitives of the order routing
// core: the geographic Location value object with great-circle distance and
// the UUID identity value object. Both follow the constructor-guard pattern,
// so zero values are detectably invalid everywhere they travel.
package kernel
