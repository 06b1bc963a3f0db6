//go:build !unix

package link

import "errors"

var errUnsupported = errors.New("socket links require a unix platform")

func newSocket() (Sender, Receiver, error) {
	return nil, nil, errUnsupported
}

func newFD() (Sender, Receiver, error) {
	return nil, nil, errUnsupported
}
