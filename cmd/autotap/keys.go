package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// keyControls reads single keys from a raw-mode terminal.
type keyControls struct {
	fd    int
	state *term.State
}

// startKeyControls returns nil when in is not a terminal. In raw mode the tty
// no longer turns Ctrl+C into SIGINT, so it is read as a key and quits.
func startKeyControls(in io.Reader, toggle, quit func()) (*keyControls, error) {
	f, ok := in.(*os.File)
	if !ok {
		return nil, nil
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	go readKeys(f, toggle, quit)
	return &keyControls{fd: fd, state: state}, nil
}

func (k *keyControls) restore() {
	_ = term.Restore(k.fd, k.state)
}

func readKeys(r io.Reader, toggle, quit func()) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		switch keyAction(buf[0]) {
		case actionToggle:
			toggle()
		case actionQuit:
			quit()
			return
		}
	}
}

type keyActionKind int

const (
	actionNone keyActionKind = iota
	actionToggle
	actionQuit
)

func keyAction(b byte) keyActionKind {
	switch b {
	case 's', 'S', ' ':
		return actionToggle
	case 'q', 'Q', 0x03, 0x04: // Ctrl+C, Ctrl+D
		return actionQuit
	default:
		return actionNone
	}
}
