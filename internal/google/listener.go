package google

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// CodeListener is a one-shot HTTP listener that captures the authorization
// code from the OAuth redirect. It binds the loopback interface on the
// configured redirect port, serves a single redirect request, and shuts down.
type CodeListener struct {
	listener net.Listener
	server   *http.Server
	codeCh   chan string
	errCh    chan error
}

// NewCodeListener binds the loopback redirect port. Port 0 picks a free
// port, which is useful in tests.
func NewCodeListener(port int) (*CodeListener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to bind redirect port %d: %w", port, err)
	}

	l := &CodeListener{
		listener: ln,
		codeCh:   make(chan string, 1),
		errCh:    make(chan error, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", l.handleRedirect)
	l.server = &http.Server{Handler: mux}

	go func() {
		if err := l.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			select {
			case l.errCh <- err:
			default:
			}
		}
	}()

	return l, nil
}

// Addr returns the address the listener is bound to.
func (l *CodeListener) Addr() string {
	return l.listener.Addr().String()
}

func (l *CodeListener) handleRedirect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errName := q.Get("error"); errName != "" {
		http.Error(w, "Authorization failed: "+errName, http.StatusBadRequest)
		select {
		case l.errCh <- fmt.Errorf("authorization denied: %s", errName):
		default:
		}
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><p>Authorization received. You can close this window.</p></body></html>")

	select {
	case l.codeCh <- code:
	default:
	}
}

// Wait blocks until the authorization code arrives or the context is done,
// then shuts the listener down.
func (l *CodeListener) Wait(ctx context.Context) (string, error) {
	defer l.Close()

	select {
	case code := <-l.codeCh:
		return code, nil
	case err := <-l.errCh:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close shuts the listener down.
func (l *CodeListener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.server.Shutdown(ctx)
}
