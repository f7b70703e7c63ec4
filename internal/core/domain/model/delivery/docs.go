// Package delivery provides the Delivery aggregate of the seller console.
//
// A delivery moves goods from a seller to either a registered retailer or a
// manually entered recipient. Its lifecycle is:
//
//	pending -> in_transit -> delivered
//
// with cancellation allowed from pending and in_transit. delivered and
// cancelled are terminal. actualDeliveryTime is set exactly when the delivery
// reaches delivered, and every status write increments the version.
package delivery
