// Package billing provides domain models for customer bills and collections.
//
// A Bill covers one or more sales orders of a customer and tracks the
// outstanding balance through its lifecycle:
//   - created unpaid with the summed total of its orders
//   - partially received as payments arrive
//   - settled once the balance reaches zero or is settled explicitly
//   - rolled back to unpaid, restoring the full balance
//
// Bills own their mapping rows to orders. Orders are referenced by order id
// only; binding an order to a bill flips the billing flag on its line items
// in the trade domain.
package billing
