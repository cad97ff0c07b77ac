// Package llm defines the completion-service boundary used by the query
// generation pipeline. It provides conversation message types, completion
// request/response structures, the Client interface implemented by concrete
// transports, and error classification for transient failures.
//
// The pipeline issues exactly one logical completion request per generation
// call; retry policy lives in the orchestrator, not here.
package llm
