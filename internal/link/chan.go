package link

import "sync"

type chanSender struct {
	ch   chan<- uint64
	once sync.Once
}

type chanReceiver struct {
	ch <-chan uint64
}

func newChan() (*chanSender, *chanReceiver) {
	ch := make(chan uint64, 1)
	return &chanSender{ch: ch}, &chanReceiver{ch: ch}
}

func (s *chanSender) Send(v uint64) error {
	s.ch <- v
	return nil
}

func (s *chanSender) Close() error {
	s.once.Do(func() { close(s.ch) })
	return nil
}

func (r *chanReceiver) Recv() (uint64, error) {
	v, ok := <-r.ch
	if !ok {
		return 0, ErrClosed
	}
	return v, nil
}

// Close is a no-op; only the sending side may close a channel.
func (r *chanReceiver) Close() error {
	return nil
}
