package domain

import "errors"

var (
	// ErrGenerationExhausted signals that every generation attempt produced
	// a query the store rejected.
	ErrGenerationExhausted = errors.New("query generation exhausted")
	// ErrLLMUnavailable signals a transport-level LLM failure.
	ErrLLMUnavailable = errors.New("llm service unavailable")
	// ErrStoreUnreachable signals that the backing store cannot be reached.
	ErrStoreUnreachable = errors.New("store unreachable")
)
