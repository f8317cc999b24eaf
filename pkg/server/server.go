package server

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arcbound/symspell/internal/logger"
	"github.com/arcbound/symspell/pkg/symspell"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// maxFrameBytes bounds a single incoming frame, guarding against a
// corrupt or hostile length prefix forcing an enormous allocation.
const maxFrameBytes = 1 << 20

// Server handles msgpack IPC for a single loaded index.
type Server struct {
	idx      *symspell.Index
	reader   *bufio.Reader
	writer   io.Writer
	log      *log.Logger
	defLimit int
	maxLimit int
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithDefaultLimit sets the suggestion cap applied when a request omits
// "limit".
func WithDefaultLimit(n int) Option {
	return func(s *Server) { s.defLimit = n }
}

// WithMaxLimit sets the hard ceiling a request's "limit" is clamped to.
func WithMaxLimit(n int) Option {
	return func(s *Server) { s.maxLimit = n }
}

// NewServer creates a server over idx, speaking msgpack IPC on stdin/stdout.
func NewServer(idx *symspell.Index, opts ...Option) *Server {
	s := &Server{
		idx:      idx,
		reader:   bufio.NewReader(os.Stdin),
		writer:   os.Stdout,
		log:      logger.Default("server"),
		defLimit: 10,
		maxLimit: 50,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the request/response loop, returning nil on a clean EOF
// from the client.
func (s *Server) Start() error {
	s.log.Debug("starting IPC server")
	s.sendResponse(HealthResponse{Status: "ready"})

	for {
		frame, err := readFrame(s.reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("reading frame: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(frame, &req); err != nil {
			s.sendError("", "invalid msgpack request", 400)
			s.log.Errorf("unmarshalling request: %v", err)
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Command {
	case "lookup":
		s.handleLookup(req)
	case "health":
		s.sendResponse(HealthResponse{ID: req.ID, Status: "ok"})
	case "dict_info":
		s.handleDictInfo(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown command: %s", req.Command), 400)
	}
}

func (s *Server) handleLookup(req Request) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'query'", 400)
		return
	}

	verbosity, err := parseVerbosity(req.Verbosity)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	maxDistance := s.idx.Config().MaxDistance
	if req.MaxDistance != nil {
		maxDistance = *req.MaxDistance
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	results, err := s.idx.Lookup(req.Query, maxDistance, verbosity)
	if err != nil {
		s.sendError(req.ID, err.Error(), 422)
		return
	}
	elapsed := time.Since(start)

	if len(results) > limit {
		results = results[:limit]
	}

	suggestions := make([]LookupSuggestion, len(results))
	for i, r := range results {
		suggestions[i] = LookupSuggestion{Word: r.Surface, Distance: r.Distance, Frequency: r.Frequency}
	}

	s.sendResponse(LookupResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

func (s *Server) handleDictInfo(req Request) {
	cfg := s.idx.Config()
	s.sendResponse(DictInfoResponse{
		ID:           req.ID,
		TermCount:    s.idx.Len(),
		MaxDistance:  cfg.MaxDistance,
		Lowercase:    cfg.Lowercase,
		PrefixLength: cfg.PrefixLength,
	})
}

func parseVerbosity(v string) (symspell.Verbosity, error) {
	switch v {
	case "", "top":
		return symspell.Top, nil
	case "closest":
		return symspell.Closest, nil
	case "all":
		return symspell.All, nil
	default:
		return 0, fmt.Errorf("unknown verbosity: %q", v)
	}
}

func (s *Server) sendResponse(response interface{}) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		s.log.Errorf("marshalling response: %v", err)
		return
	}
	if err := writeFrame(s.writer, data); err != nil {
		s.log.Errorf("writing frame: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}

// readFrame reads one length-prefixed msgpack frame from r.
func readFrame(r *bufio.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if length > maxFrameBytes {
		return nil, fmt.Errorf("server: frame of %d bytes exceeds %d byte limit", length, maxFrameBytes)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFrame writes one length-prefixed msgpack frame to w.
func writeFrame(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
