package ui

import (
	"sync"

	appsvc "datastory/app"
	"datastory/domain/dataset"
)

// Session holds the one active dataset and its analysis. A new upload
// replaces both wholesale; readers always see a matched pair.
type Session struct {
	mu      sync.RWMutex
	dataset *dataset.Dataset
	result  *appsvc.AnalysisResult
}

func NewSession() *Session {
	return &Session{}
}

// Replace installs a new dataset/result pair, discarding the previous one.
func (s *Session) Replace(ds *dataset.Dataset, result *appsvc.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.result = result
}

// Current returns the active pair, or ok=false when nothing is loaded.
func (s *Session) Current() (*dataset.Dataset, *appsvc.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil || s.result == nil {
		return nil, nil, false
	}
	return s.dataset, s.result, true
}
