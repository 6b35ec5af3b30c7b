// Package handlers implements the logic behind each CLI command.
//
// Collaborators are created through package-level factory variables so
// tests can replace the cloud client, the engine provider, and the object
// store without touching real services.
package handlers
