// Package huntgen generates threat hunting queries from natural-language
// threat descriptions using a local language model.
//
// A Generator composes the full pipeline: a prompt builder renders a
// dialect-specific prompt from the description, a completion client sends it
// to the model, an extractor parses the raw completion into a query and
// explanation, a validator scores the query against the dialect's rule set,
// and an optional technique mapper links the description to an attack
// technique from the built-in catalog.
//
// Basic usage:
//
//	client := llm.NewOllamaClient(llm.OllamaOptions{})
//
//	gen, err := huntgen.NewGenerator(client)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gen.Generate(ctx,
//		"failed login attempts from external IPs in the last 24 hours",
//		dialect.SPL,
//		huntgen.GenerateOptions{IncludeMitre: true},
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(result.Query.QueryText)
//	fmt.Println(result.Validation.SyntaxScore)
//
// Three query dialects are supported: Splunk SPL, Microsoft KQL, and
// Elasticsearch query DSL. Each dialect carries exactly one prompt template
// and one validator rule set; the pairing is enforced at construction time.
//
// Generated queries are always validated, including queries recovered by the
// extractor's whole-text fallback. An invalid query is still returned to the
// caller with its findings; invalidity is data, not an error. The only
// errors Generate returns are ErrInvalidInput for a blank description and
// ErrGenerationFailed when the completion service fails after the single
// internal retry.
//
// Generators are stateless across calls and safe for concurrent use. The
// serve package exposes this pipeline over HTTP, and the library package
// persists generated queries to a Redis-backed hunt library.
package huntgen
