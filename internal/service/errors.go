package service

import "errors"

// Sentinel errors surfaced by the service layer. Handlers translate these
// into HTTP statuses; anything that does not match is reported as a generic
// server error and logged with full detail.
var (
	// ErrInvalidQuery marks query validation failures. Wrapped messages
	// name the violated rule.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNoRecipesFound means retrieval completed but matched nothing.
	// Distinct from validation so callers can tell "bad request" from
	// "nothing in the corpus".
	ErrNoRecipesFound = errors.New("no recipes found for the query")

	// ErrRecipeNotFound means a lookup by identifier matched no record.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrNoIDs means a batch endpoint was called without identifiers.
	ErrNoIDs = errors.New("at least one recipe id is required")
)
