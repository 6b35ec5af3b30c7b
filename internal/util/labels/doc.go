// Package labels provides consistent tagging for Azure resources and labels
// for Hetzner Cloud hosts created by the sample.
//
// Keys use the acrwebhooks.io prefix for Hetzner labels. Azure tags are plain
// keys because the portal shows them verbatim.
package labels
