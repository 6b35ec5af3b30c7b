// Package infrastructure creates the resource group and the container registry.
package infrastructure
