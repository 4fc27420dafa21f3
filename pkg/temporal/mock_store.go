package temporal

import (
	"context"
	"sync"
)

// MockSceneStore implements SceneStore for testing and for running the
// service without a real vault backend.
type MockSceneStore struct {
	mu     sync.RWMutex
	scenes map[string][]SceneInput // timelineID -> scenes
}

// NewMockSceneStore creates a new mock scene store
func NewMockSceneStore() *MockSceneStore {
	return &MockSceneStore{
		scenes: make(map[string][]SceneInput),
	}
}

// PutScenes replaces the scenes stored for a timeline.
func (m *MockSceneStore) PutScenes(timelineID string, scenes []SceneInput) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]SceneInput, len(scenes))
	copy(stored, scenes)
	m.scenes[timelineID] = stored
}

// LoadScenes returns the scenes stored for a timeline, empty when unknown.
func (m *MockSceneStore) LoadScenes(ctx context.Context, timelineID string) ([]SceneInput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scenes, exists := m.scenes[timelineID]
	if !exists {
		return []SceneInput{}, nil
	}

	out := make([]SceneInput, len(scenes))
	copy(out, scenes)
	return out, nil
}
