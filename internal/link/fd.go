//go:build unix

package link

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

type fdEnd struct {
	fd   int
	buf  [1]byte
	once sync.Once
}

func (e *fdEnd) Close() error {
	var err error
	e.once.Do(func() { err = unix.Close(e.fd) })
	return err
}

type fdSender struct{ fdEnd }

type fdReceiver struct{ fdEnd }

func newFD() (Sender, Receiver, error) {
	fds, err := socketPair()
	if err != nil {
		return nil, nil, err
	}
	return &fdSender{fdEnd{fd: fds[1]}}, &fdReceiver{fdEnd{fd: fds[0]}}, nil
}

func (s *fdSender) Send(v uint64) error {
	s.buf[0] = byte(v)
	for {
		n, err := unix.Write(s.fd, s.buf[:])
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EPIPE:
			return ErrClosed
		case err != nil:
			return fmt.Errorf("write link: %w", err)
		case n == 1:
			return nil
		}
	}
}

func (r *fdReceiver) Recv() (uint64, error) {
	for {
		n, err := unix.Read(r.fd, r.buf[:])
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return 0, fmt.Errorf("read link: %w", err)
		case n == 0:
			return 0, ErrClosed
		default:
			return uint64(r.buf[0]), nil
		}
	}
}
