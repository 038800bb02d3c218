// file: internal/server/server.go
// version: 1.2.0
// guid: bccddeef-5263-7485-96a7-b8c9daebfc0d

// Package server exposes a decoded library as a read-only HTTP API.
package server

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdfalk/itl-exporter/internal/itl"
	"github.com/jdfalk/itl-exporter/internal/metrics"
)

// Server serves a decoded library over HTTP. The library can be swapped at
// runtime (watch mode re-decodes on file change), so access goes through a
// read-write lock.
type Server struct {
	mu     sync.RWMutex
	lib    *itl.Library
	router *gin.Engine
}

// LibrarySummary is the response shape of GET /api/library.
type LibrarySummary struct {
	Version      string         `json:"version"`
	TrackCount   int            `json:"track_count"`
	PlaylistCount int           `json:"playlist_count"`
	LittleEndian bool           `json:"little_endian"`
	ChunkCounts  map[string]int `json:"chunk_counts"`
}

// PlaylistSummary is one entry of GET /api/playlists.
type PlaylistSummary struct {
	Title     string `json:"title"`
	ItemCount int    `json:"item_count"`
}

// SearchResult is one entry of GET /api/search.
type SearchResult struct {
	Track itl.Track `json:"track"`
	Rank  int       `json:"rank"`
}

// New builds a Server around an already-decoded library.
func New(lib *itl.Library) *Server {
	metrics.Register()

	s := &Server{lib: lib}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/library", s.handleLibrary)
		api.GET("/tracks", s.handleTracks)
		api.GET("/tracks/:id", s.handleTrack)
		api.GET("/playlists", s.handlePlaylists)
		api.GET("/playlists/:title", s.handlePlaylist)
		api.GET("/search", s.handleSearch)
	}

	s.router = r
	return s
}

// SetLibrary swaps in a freshly decoded library.
func (s *Server) SetLibrary(lib *itl.Library) {
	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()
}

// Handler returns the HTTP handler, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) library() *itl.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleLibrary(c *gin.Context) {
	lib := s.library()
	c.JSON(http.StatusOK, LibrarySummary{
		Version:       lib.Version,
		TrackCount:    len(lib.Tracks),
		PlaylistCount: len(lib.Playlists),
		LittleEndian:  lib.LittleEndian,
		ChunkCounts:   lib.ChunkCounts,
	})
}

func (s *Server) handleTracks(c *gin.Context) {
	lib := s.library()
	tracks := make([]itl.Track, 0, len(lib.Tracks))
	for _, t := range lib.Tracks {
		tracks = append(tracks, t)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].SongID < tracks[j].SongID })
	c.JSON(http.StatusOK, tracks)
}

func (s *Server) handleTrack(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "track id must be an integer"})
		return
	}
	track, ok := s.library().Tracks[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "track not found"})
		return
	}
	c.JSON(http.StatusOK, track)
}

func (s *Server) handlePlaylists(c *gin.Context) {
	lib := s.library()
	summaries := make([]PlaylistSummary, 0, len(lib.Playlists))
	for title, pl := range lib.Playlists {
		summaries = append(summaries, PlaylistSummary{Title: title, ItemCount: len(pl.Items)})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Title < summaries[j].Title })
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) handlePlaylist(c *gin.Context) {
	pl, ok := s.library().Playlists[c.Param("title")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
		return
	}
	c.JSON(http.StatusOK, pl)
}

// handleSearch fuzzy-matches q against track titles, artists and albums.
func (s *Server) handleSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	lib := s.library()
	var results []SearchResult
	for _, track := range lib.Tracks {
		best := -1
		for _, field := range []string{track.Title, track.Artist, track.Album} {
			if field == "" {
				continue
			}
			if rank := fuzzy.RankMatchNormalizedFold(q, field); rank >= 0 && (best < 0 || rank < best) {
				best = rank
			}
		}
		if best >= 0 {
			results = append(results, SearchResult{Track: track, Rank: best})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank < results[j].Rank
		}
		return results[i].Track.SongID < results[j].Track.SongID
	})
	if results == nil {
		results = []SearchResult{}
	}
	c.JSON(http.StatusOK, results)
}
