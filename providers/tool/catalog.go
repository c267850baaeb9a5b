package tool

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/leofalp/webscout/providers/ai"
)

// Catalog is a thread-safe registry of tools keyed by their exact name.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		tools: make(map[string]GenericTool),
	}
}

// NewCatalogWithTools creates a catalog holding tools.
func NewCatalogWithTools(tools ...GenericTool) *Catalog {
	catalog := NewCatalog()
	catalog.AddTools(tools...)
	return catalog
}

// AddTools registers tools under ToolInfo().Name, replacing any tool
// already registered with the same name.
func (c *Catalog) AddTools(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[t.ToolInfo().Name] = t
	}
}

// Get looks name up exactly first and then case-insensitively, since small
// models sometimes capitalise tool names.
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if tool, ok := c.tools[name]; ok {
		return tool, true
	}
	for registered, tool := range c.tools {
		if strings.EqualFold(registered, name) {
			return tool, true
		}
	}
	return nil, false
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Remove deletes the tool registered under exactly name.
func (c *Catalog) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tools[name]; !ok {
		return false
	}
	delete(c.tools, name)
	return true
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.tools))
}

// Descriptions returns every tool's description sorted by name, so requests
// to the model are stable across runs.
func (c *Catalog) Descriptions() []ai.ToolDescription {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descriptions := make([]ai.ToolDescription, 0, len(c.tools))
	for _, name := range slices.Sorted(maps.Keys(c.tools)) {
		descriptions = append(descriptions, c.tools[name].ToolInfo())
	}
	return descriptions
}

// Size returns the number of registered tools.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}
