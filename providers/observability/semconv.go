package observability

// Semantic conventions for observability attributes and events.

// --- LLM ---

const (
	AttrLLMProvider     = "llm.provider"
	AttrLLMModel        = "llm.model"
	AttrLLMEndpoint     = "llm.endpoint"
	AttrLLMFinishReason = "llm.finish_reason"

	AttrLLMTokensPrompt     = "llm.tokens.prompt"     // #nosec G101 -- token refers to LLM tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- token refers to LLM tokens
	AttrLLMTokensTotal      = "llm.tokens.total"      // #nosec G101 -- token refers to LLM tokens
)

// --- Tools ---

const (
	AttrToolName     = "tool.name"
	AttrToolCallID   = "tool.call_id"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolDuration = "tool.duration"
	AttrToolError    = "tool.error"
)

// --- Scrape pipeline ---

const (
	AttrScrapeURL        = "scrape.url"
	AttrScrapeFinalURL   = "scrape.final_url"
	AttrScrapeStrategy   = "scrape.strategy"
	AttrScrapeRawLength  = "scrape.raw_length"
	AttrScrapeTextLength = "scrape.text_length"
	AttrScrapeTruncated  = "scrape.truncated"
	AttrScrapeErrorKind  = "scrape.error_kind"
	AttrScrapeEncoding   = "scrape.encoding"
)

// --- Search ---

const (
	AttrSearchBackend = "search.backend"
	AttrSearchQuery   = "search.query"
	AttrSearchResults = "search.results"
)

// --- Orchestration loop ---

const (
	AttrLoopIteration = "loop.iteration"
	AttrLoopState     = "loop.state"
	AttrLoopToolCalls = "loop.tool_calls"
)

// --- HTTP ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPDuration         = "http.duration"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Memory ---

const (
	AttrMemoryMessageRole   = "memory.message.role"
	AttrMemoryMessageLength = "memory.message.length"
	AttrMemoryTotalMessages = "memory.total_messages"
)

// --- General ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span names ---

const (
	SpanAgentExecute = "agent.execute"
	SpanLLMRequest   = "llm.request"
	SpanToolExecute  = "tool.execute"
	SpanScrape       = "scrape"
)

// --- Event names ---

const (
	EventHTTPRequest        = "http.request.prepared"
	EventHTTPResponse       = "http.response.received"
	EventHTTPError          = "http.request.error"
	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"
	EventStateTransition    = "loop.state.transition"
	EventExtractionAttempt  = "scrape.extraction.attempt"
	EventMemoryAppend       = "memory.append"
	EventMemoryClear        = "memory.clear"
)
