//go:build unix

package link

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// socketPair returns a connected AF_UNIX stream pair: fds[0] reads, fds[1] writes.
func socketPair() ([2]int, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return fds, fmt.Errorf("socketpair: %w", err)
	}
	unix.CloseOnExec(fds[0])
	unix.CloseOnExec(fds[1])
	return fds, nil
}

type socketSender struct {
	conn net.Conn
	buf  [1]byte
}

type socketReceiver struct {
	conn net.Conn
	buf  [1]byte
}

func newSocket() (Sender, Receiver, error) {
	fds, err := socketPair()
	if err != nil {
		return nil, nil, err
	}

	rc, err := fileConn(fds[0], "link-read")
	if err != nil {
		unix.Close(fds[1])
		return nil, nil, err
	}
	wc, err := fileConn(fds[1], "link-write")
	if err != nil {
		rc.Close()
		return nil, nil, err
	}

	return &socketSender{conn: wc}, &socketReceiver{conn: rc}, nil
}

// fileConn hands fd to the runtime poller. The original descriptor is
// closed; the returned conn owns a duplicate.
func fileConn(fd int, name string) (net.Conn, error) {
	f := os.NewFile(uintptr(fd), name)
	defer f.Close()

	c, err := net.FileConn(f)
	if err != nil {
		return nil, fmt.Errorf("wrap %s: %w", name, err)
	}
	return c, nil
}

func (s *socketSender) Send(v uint64) error {
	s.buf[0] = byte(v)
	if _, err := s.conn.Write(s.buf[:]); err != nil {
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, net.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("write link: %w", err)
	}
	return nil
}

func (s *socketSender) Close() error {
	return s.conn.Close()
}

func (r *socketReceiver) Recv() (uint64, error) {
	if _, err := io.ReadFull(r.conn, r.buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			return 0, ErrClosed
		}
		return 0, fmt.Errorf("read link: %w", err)
	}
	return uint64(r.buf[0]), nil
}

func (r *socketReceiver) Close() error {
	return r.conn.Close()
}
