// Package order implements the Order aggregate and its fulfillment lifecycle.
//
// An order only comes into existence once the payment gateway has confirmed
// payment, so every order starts in Received. From there it moves strictly
// forward, one step at a time:
//
//	Received -> Processing -> Shipped -> Delivered
//
// Key business rules:
//   - an order has at least one item and its totals always satisfy
//     total = subtotal + tax + shipping fee
//   - no transition skips a state and none moves backward
//   - advancing to a state the order has already reached is a no-op, so a
//     retried webhook or a replayed request succeeds without side effects
//   - cancellation and refunds are not supported once payment is confirmed
//   - items, shipping address and payment method are frozen as soon as the
//     order leaves Received
package order
