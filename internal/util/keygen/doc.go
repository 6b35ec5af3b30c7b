// Package keygen generates throwaway SSH key pairs.
//
// The remote container engine host is reached over SSH with a key that lives
// only for the duration of one run. Keys are Ed25519; the private key is
// emitted as an OpenSSH PEM block and the public key in authorized_keys format.
package keygen
