// Package config holds the session configuration for webscout.
//
// A [Config] is loaded once with [Load] and passed by value to the
// constructors that need it. Sources are layered, later ones winning:
//
//  1. built-in defaults ([Default])
//  2. an optional YAML file
//  3. an optional .env file (existing process variables are never overwritten)
//  4. process environment variables (WEBSCOUT_*, OPENAI_API_KEY, BRAVE_SEARCH_API_KEY)
package config
