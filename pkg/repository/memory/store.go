// Package memory is the session store: every account, conversation and
// analysis lives in process memory under one lock and vanishes on restart.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/chat"
)

// Store holds all application state. A single RWMutex guards every map so
// cross-entity invariants (email uniqueness, account back-references) stay
// atomic.
type Store struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]account.Account
	emailIndex map[string]uuid.UUID
	chats      map[uuid.UUID]chat.Conversation
	analyses   map[uuid.UUID]analysis.Analysis

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]account.Account),
		emailIndex: make(map[string]uuid.UUID),
		chats:      make(map[uuid.UUID]chat.Conversation),
		analyses:   make(map[uuid.UUID]analysis.Analysis),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Stats reports record counts for readiness and diagnostics endpoints.
type Stats struct {
	Accounts      int `json:"accounts"`
	Conversations int `json:"conversations"`
	Analyses      int `json:"analyses"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Accounts:      len(s.accounts),
		Conversations: len(s.chats),
		Analyses:      len(s.analyses),
	}
}

// Accounts exposes the store as an account repository.
func (s *Store) Accounts() account.Repository { return (*accountRepo)(s) }

// Chats exposes the store as a conversation repository.
func (s *Store) Chats() chat.Repository { return (*chatRepo)(s) }

// Analyses exposes the store as an analysis repository.
func (s *Store) Analyses() analysis.Repository { return (*analysisRepo)(s) }

type accountRepo Store
type chatRepo Store
type analysisRepo Store
