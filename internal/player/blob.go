package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// BlobServer serves downloaded videos to the external media player over loopback HTTP.  Each registered payload is
// reachable through an ObjectURL until it is released.
type BlobServer struct {
	listenAddr string
	router     chi.Router
	server     *http.Server

	mu      sync.RWMutex
	baseURL string
	blobs   map[string]blob
	// startErr is set when Start could not bind.  No object URLs are handed out afterwards.
	startErr error
}

// ErrBlobServerUnavailable is returned by CreateObjectURL when the local server failed to start
var ErrBlobServerUnavailable = errors.New("local video server is not running")

type blob struct {
	data        []byte
	contentType string
	created     time.Time
}

func NewBlobServer(listenAddr string) *BlobServer {
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}
	s := &BlobServer{
		listenAddr: listenAddr,
		blobs:      make(map[string]blob),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Get("/blob/{id}", s.handleBlob)
	s.router = r

	return s
}

// Handler exposes the router, mainly so it can be mounted in an httptest server
func (s *BlobServer) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background
func (s *BlobServer) Start() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		err = fmt.Errorf("failed to start blob server on %s: %w", s.listenAddr, err)
		s.mu.Lock()
		s.startErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.baseURL = "http://" + ln.Addr().String()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.server
	s.mu.Unlock()

	log.Info("Blob server listening", "addr", ln.Addr().String())
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Blob server stopped", "error", err)
		}
	}()
	return nil
}

// Close stops the server and drops every registered payload
func (s *BlobServer) Close() error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.blobs = make(map[string]blob)
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// SetBaseURL points object URLs at a server other than the one started by Start
func (s *BlobServer) SetBaseURL(baseURL string) {
	s.mu.Lock()
	s.baseURL = baseURL
	s.mu.Unlock()
}

// CreateObjectURL registers data and returns a reference to it.  The caller owns the reference and must Release it.
// It fails with ErrBlobServerUnavailable after a failed Start.
func (s *BlobServer) CreateObjectURL(data []byte, contentType string) (*ObjectURL, error) {
	s.mu.RLock()
	startErr := s.startErr
	s.mu.RUnlock()
	if startErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlobServerUnavailable, startErr)
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	s.mu.Lock()
	s.blobs[id.String()] = blob{data: data, contentType: contentType, created: time.Now()}
	s.mu.Unlock()

	log.Debug("Created object URL", "id", id.String(), "bytes", len(data), "content_type", contentType)
	return &ObjectURL{ID: id.String(), server: s}, nil
}

// Len reports the number of live references
func (s *BlobServer) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

func (s *BlobServer) revoke(id string) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
	log.Debug("Released object URL", "id", id)
}

func (s *BlobServer) url(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL + "/blob/" + id
}

func (s *BlobServer) handleBlob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	b, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", b.contentType)
	http.ServeContent(w, r, "", b.created, bytes.NewReader(b.data))
}

// ObjectURL is a revocable reference to a payload held by a BlobServer
type ObjectURL struct {
	ID     string
	server *BlobServer
	once   sync.Once
}

func (u *ObjectURL) URL() string {
	return u.server.url(u.ID)
}

// Release revokes the reference.  Only the first call has any effect.
func (u *ObjectURL) Release() {
	u.once.Do(func() {
		u.server.revoke(u.ID)
	})
}
