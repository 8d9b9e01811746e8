// Package order implements the Order aggregate root and its lifecycle state
// machine. An order is created once, always in status NEW, and changes only
// through validated transitions that each append an immutable
// TransitionRecord. COMPLETED and CANCELLED are terminal; nothing reopens an
// order.
package order
