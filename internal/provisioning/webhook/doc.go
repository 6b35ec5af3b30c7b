// Package webhook creates the two registry webhooks and reads the delivery
// history of the primary one before and after the image push.
package webhook
