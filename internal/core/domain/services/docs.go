// Package services provides the stateless domain services of the routing
// core: BranchSelector ranks restaurant branches against a customer location,
// and RouteApproximator orders delivery stops with a greedy nearest-unvisited
// heuristic. Both build on the kernel's great-circle distance and hold no
// state of their own.
package services
