// Package pricing computes the monetary totals of a cart or an order.
//
// The engine is a pure function of its inputs: the priced lines, a tax rate
// supplied by the caller and the shipping Policy it was built with. It is
// deterministic and may be called any number of times to refresh a quote
// before checkout.
//
// Rules:
//   - at least one line, every quantity > 0, every unit price >= 0
//   - subtotal is the sum of line totals (unit price x quantity)
//   - shipping is free when subtotal >= Policy.FreeShippingThreshold,
//     otherwise Policy.FlatShippingFee
//   - tax = subtotal x taxRate, rounded half-up to cents
//   - total = subtotal + tax + shipping
//
// All arithmetic is done in integer cents.
package pricing
