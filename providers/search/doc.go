// Package search provides web search backends behind the [Searcher]
// interface used by the search_web tool.
//
// Two backends are available: [DuckDuckGo], which scrapes the keyless
// DuckDuckGo lite page, and [Brave], which calls the Brave Search API and
// needs a subscription token.
package search
