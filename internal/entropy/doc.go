// Package entropy buffers cryptographically secure random bytes.
//
// Reading from the operating system's secure source once per generated
// character is expensive. A Pool reads in bulk and hands out slices of its
// buffer until the unread tail is too short, then refills the whole buffer in
// place. Bytes left unread at refill time are discarded, never reused.
//
// A Pool is safe for concurrent use. One mutex covers the refill decision, the
// source read and the copy out of the buffer, so no caller can observe a
// half-refilled buffer or a cursor past its end.
package entropy
