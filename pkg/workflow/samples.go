package workflow

import (
	"sort"
	"strings"
	"sync"
)

const nodejsSample = `name: Node.js CI/CD
on:
  push:
    branches: [ main ]
jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-node@v4
      - run: npm test
  build:
    needs: test
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - run: npm run build
  deploy:
    needs: build
    runs-on: ubuntu-latest
    steps:
      - run: echo "Deploying..."
`

const dockerSample = `name: Docker Build
on:
  push:
    branches: [ main ]
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: docker/build-push-action@v5
        with:
          push: true
          tags: myapp:latest
`

type Sample struct {
	Type string `json:"type"`
	YAML string `json:"yaml"`
}

// SampleSet is a named collection of reference workflow documents.
type SampleSet struct {
	mutex   sync.RWMutex
	samples map[string]string
}

// NewSampleSet returns a set holding the built-in "nodejs" and "docker"
// samples.
func NewSampleSet() *SampleSet {
	return &SampleSet{
		samples: map[string]string{
			"nodejs": nodejsSample,
			"docker": dockerSample,
		},
	}
}

func sampleKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "sample ")
	return strings.TrimSpace(key)
}

// Add registers or replaces a sample.
func (s *SampleSet) Add(name, content string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.samples[sampleKey(name)] = content
}

// Get looks a sample up by name. Case and a leading "sample " are ignored.
func (s *SampleSet) Get(name string) (Sample, error) {
	key := sampleKey(name)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	content, exists := s.samples[key]
	if !exists {
		return Sample{}, ErrUnknownSample
	}
	return Sample{Type: key, YAML: content}, nil
}

func (s *SampleSet) Names() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	names := make([]string, 0, len(s.samples))
	for name := range s.samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
