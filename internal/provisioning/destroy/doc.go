// Package destroy deletes the run's resource group and everything in it.
package destroy
