package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/sitesuggest/internal/utils"
	"github.com/bastiangx/sitesuggest/pkg/catalog"
	"github.com/bastiangx/sitesuggest/pkg/config"
	"github.com/bastiangx/sitesuggest/pkg/session"
	"github.com/bastiangx/sitesuggest/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ReloadInterval is how many requests pass between config file checks.
const ReloadInterval = 100

// Server handles the IPC for site suggestions
type Server struct {
	index   *suggest.Index
	catalog *catalog.Catalog
	config  *config.Config

	configPath    string
	configModTime time.Time
	overrides     config.Overrides

	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
	writer *bufio.Writer

	requestCount int
}

// NewServer creates a suggestion server using stdin/stdout for IPC
func NewServer(c *catalog.Catalog, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(c, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(c *catalog.Catalog, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	s := &Server{
		catalog:    c,
		config:     cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     writer,
		enc:        msgpack.NewEncoder(writer),
	}
	s.index = suggest.NewIndex(c, cfg.IndexOptions()...)
	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			s.configModTime = info.ModTime()
		}
	}
	return s
}

// SetOverrides pins command line settings over the config file. They are
// applied now and again after every reload.
func (s *Server) SetOverrides(o config.Overrides) {
	s.overrides = o
	o.Apply(s.config)
	s.index = suggest.NewIndex(s.catalog, s.config.IndexOptions()...)
}

// Index returns the index currently serving requests.
func (s *Server) Index() *suggest.Index {
	return s.index
}

// Start writes the ready signal and serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server.")
				return nil
			}
			log.Errorf("Reading from stdin: %v", err)
			return fmt.Errorf("reading request: %w", err)
		}
		s.handleMessage(raw)
	}
}

// handleMessage decodes one framed message and dispatches it.
func (s *Server) handleMessage(raw msgpack.RawMessage) {
	s.requestCount++
	if s.requestCount%ReloadInterval == 0 {
		s.reloadConfigIfChanged()
	}

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid msgpack request", 400)
		return
	}

	switch req.Action {
	case "", "suggest":
		s.handleSuggest(req)
	case "submit":
		s.handleSubmit(req)
	case "terms":
		s.handleTerms(req)
	case "catalog":
		s.handleCatalog(req)
	case "health":
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case "stats":
		s.handleStats(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleSuggest(req Request) {
	query := utils.NormalizeQuery(req.Query)
	if !utils.IsSearchable(query, s.config.Search.MinQuery) {
		log.Debugf("Query '%s' below minimum length, skipped", query)
		s.sendResponse(SuggestResponse{ID: req.ID, Suggestions: []Suggestion{}, Skipped: true})
		return
	}

	limit := utils.ClampLimit(req.Limit, s.index.MaxResults(), s.index.MaxResults())

	start := time.Now()
	results := s.index.Search(query)
	elapsed := time.Since(start)

	if len(results) > limit {
		results = results[:limit]
	}

	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = Suggestion{
			Name:        r.Entry.Name,
			Category:    r.Entry.Category,
			Kind:        r.Entry.Kind.String(),
			Target:      session.Resolve(s.config.Site.BaseURL, r.Entry.Target),
			Highlighted: r.Highlighted,
			Rank:        uint16(r.Rank),
		}
	}

	s.sendResponse(SuggestResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleSubmit(req Request) {
	query := utils.NormalizeQuery(req.Query)
	if query == "" {
		s.sendError(req.ID, "Missing 'q' parameter", 400)
		return
	}
	dest := session.Destination(s.config.SessionOptions(), query)
	log.Debug("Search submitted", "query", query, "destination", dest)
	s.sendResponse(SubmitResponse{ID: req.ID, Status: "ok", Destination: dest})
}

func (s *Server) handleTerms(req Request) {
	prefix := utils.NormalizeQuery(req.Query)
	if prefix == "" {
		s.sendError(req.ID, "Missing 'q' parameter", 400)
		return
	}
	limit := utils.ClampLimit(req.Limit, s.config.UI.TermLimit, 64)
	terms := s.index.Terms(prefix, limit)
	if terms == nil {
		terms = []string{}
	}
	s.sendResponse(TermsResponse{ID: req.ID, Terms: terms, Count: len(terms)})
}

func (s *Server) handleCatalog(req Request) {
	c := s.index.Catalog()
	entries := make([]CatalogEntry, 0, c.Len())
	c.Each(func(_ int, e catalog.Entry) bool {
		entries = append(entries, CatalogEntry{
			Kind:     e.Kind.String(),
			Name:     e.Name,
			Category: e.Category,
			Target:   session.Resolve(s.config.Site.BaseURL, e.Target),
			Icon:     e.Kind.Icon(),
			Color:    e.Kind.Color(),
		})
		return true
	})
	s.sendResponse(CatalogResponse{ID: req.ID, Entries: entries, Count: len(entries)})
}

func (s *Server) handleStats(req Request) {
	stats := s.index.Stats()
	stats["requests"] = s.requestCount
	s.sendResponse(StatusResponse{ID: req.ID, Status: "ok", Stats: stats})
}

// reloadConfigIfChanged rebuilds the index when the config file was modified.
func (s *Server) reloadConfigIfChanged() {
	if s.configPath == "" {
		return
	}
	info, err := os.Stat(s.configPath)
	if err != nil {
		log.Warnf("Cannot stat config %s: %v", s.configPath, err)
		return
	}
	if !info.ModTime().After(s.configModTime) {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Config reload failed, keeping current settings: %v", err)
		return
	}
	s.configModTime = info.ModTime()
	s.overrides.Apply(cfg)
	s.config = cfg
	s.index = suggest.NewIndex(s.catalog, cfg.IndexOptions()...)
	log.Debugf("Reloaded config from %s after %d requests", s.configPath, s.requestCount)
}

// sendResponse encodes the response and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
