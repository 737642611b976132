package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/maxviazov/hockey-match-engine/internal/engine"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 500
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

// parseMatchID canonicalises a uuid or reports it as a field error.
func parseMatchID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", newInvalidInput([]FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}
	return u.String(), nil
}

// rosterFieldErrors flattens an engine roster error under prefix
// ("home", "away"). Other errors yield nil.
func rosterFieldErrors(prefix string, err error) []FieldError {
	var rerr *engine.RosterError
	if !errors.As(err, &rerr) {
		return nil
	}
	out := make([]FieldError, 0, len(rerr.Fields))
	for _, f := range rerr.Fields {
		out = append(out, FieldError{Field: prefix + "." + f.Field, Message: f.Message})
	}
	return out
}

func validateCreate(in CreateMatchInput) []FieldError {
	var ferrs []FieldError
	if err := in.Home.Validate(); err != nil {
		ferrs = append(ferrs, rosterFieldErrors("home", err)...)
	}
	if err := in.Away.Validate(); err != nil {
		ferrs = append(ferrs, rosterFieldErrors("away", err)...)
	}
	if len(in.Reward) > 0 && !json.Valid(in.Reward) {
		ferrs = append(ferrs, FieldError{Field: "reward", Message: "must be valid JSON"})
	}
	return ferrs
}
