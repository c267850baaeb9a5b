// Package websearch exposes a search backend to the model as the search_web
// tool. Results carry title, URL and snippet so the model can pick a page to
// scrape.
package websearch
