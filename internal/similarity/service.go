package similarity

import (
	"errors"
	"fmt"
)

// Method identifies a similarity scoring method.
type Method string

const (
	MethodJaccard     Method = "jaccard"
	MethodCosineTfIdf Method = "cosine_tfidf"
)

// DefaultMethod is used when the caller does not specify one.
const DefaultMethod = MethodCosineTfIdf

// Known reports whether m names a built-in method.
func (m Method) Known() bool {
	switch m {
	case MethodJaccard, MethodCosineTfIdf:
		return true
	}
	return false
}

var ErrUnknownMethod = errors.New("unknown similarity method")

// Service dispatches similarity calculations through a registry of scorers.
type Service struct {
	scorers       map[Method]Scorer
	order         []Method
	defaultMethod Method
}

// NewService builds a service with the built-in scorers registered. An empty
// defaultMethod falls back to DefaultMethod.
func NewService(defaultMethod Method) (*Service, error) {
	s := &Service{
		scorers: map[Method]Scorer{
			MethodJaccard:     Jaccard,
			MethodCosineTfIdf: CosineTfIdf,
		},
		order: []Method{MethodJaccard, MethodCosineTfIdf},
	}

	if defaultMethod == "" {
		defaultMethod = DefaultMethod
	}
	if _, ok := s.scorers[defaultMethod]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, defaultMethod)
	}
	s.defaultMethod = defaultMethod

	return s, nil
}

// Calculate scores two texts with the given method. An empty method uses the
// service default. Returns the score and the method actually used.
func (s *Service) Calculate(text1, text2 string, method Method) (float64, Method, error) {
	if method == "" {
		method = s.defaultMethod
	}

	scorer, ok := s.scorers[method]
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	return scorer(text1, text2), method, nil
}

// Has reports whether the method is registered.
func (s *Service) Has(method Method) bool {
	_, ok := s.scorers[method]
	return ok
}

// Methods lists the registered method names in registration order.
func (s *Service) Methods() []string {
	names := make([]string, 0, len(s.order))
	for _, m := range s.order {
		names = append(names, string(m))
	}
	return names
}

// Default returns the configured default method.
func (s *Service) Default() Method {
	return s.defaultMethod
}
