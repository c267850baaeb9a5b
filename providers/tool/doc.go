// Package tool defines the callable tools a model can request.
//
// A [Tool] wraps a typed Go function with its name, description and a JSON
// schema derived from the input type. [GenericTool] hides the type
// parameters so tools can be stored in a [Catalog] and dispatched by name.
//
// The domain tools live in subpackages: scrapeurl (scrape_url) and
// websearch (search_web).
package tool
