// Package link provides single-producer, single-consumer data links.
//
// A link moves one payload at a time from a Sender to a Receiver. Three kinds
// are available, each matching a way a forwarding unit can block:
//   - chan:   buffered Go channel of capacity 1, carries a full uint64
//   - socket: AF_UNIX socket pair wrapped in net.Conn; blocking parks the
//     goroutine on the runtime network poller, not the OS thread
//   - fd:     AF_UNIX socket pair driven by raw read(2)/write(2); blocking
//     parks the calling OS thread in the kernel
//
// Socket and fd links carry one byte per payload, so only the low 8 bits of a
// value survive the trip.
//
// Closing a Sender makes the peer Receiver return ErrClosed once drained.
package link
