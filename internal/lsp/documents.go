package lsp

import "sync"

// DocumentStore holds open document contents and their latest analysis,
// keyed by URI.
type DocumentStore struct {
	mu      sync.RWMutex
	docs    map[string]string
	results map[string]*AnalysisResult
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:    make(map[string]string),
		results: make(map[string]*AnalysisResult),
	}
}

func (s *DocumentStore) Open(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = content
	delete(s.results, uri)
}

// Update replaces the content and drops the stale analysis.
func (s *DocumentStore) Update(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = content
	delete(s.results, uri)
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
	delete(s.results, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.docs[uri]
	return content, ok
}

// Result returns the cached analysis for uri, analyzing the document
// first if needed. It returns nil for unknown documents.
func (s *DocumentStore) Result(uri string) *AnalysisResult {
	s.mu.RLock()
	content, ok := s.docs[uri]
	result := s.results[uri]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if result != nil {
		return result
	}

	result = Analyze(uri, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Only cache if the document did not change while analyzing
	if current, ok := s.docs[uri]; ok && current == content {
		s.results[uri] = result
	}
	return result
}
