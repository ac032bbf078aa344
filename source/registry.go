package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Factory builds an Adapter (xlsx, csv, …).
type Factory func() Adapter

var (
	registry   = map[string]Factory{}
	extensions = map[string]string{}
)

// Register is called from each driver's init(). exts are the file
// extensions (with dot) the driver claims when no driver is named.
func Register(name string, f Factory, exts ...string) {
	registry[name] = f
	for _, e := range exts {
		extensions[strings.ToLower(e)] = name
	}
}

// NewAdapter returns a driver by name.
func NewAdapter(name string) (Adapter, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("source: unsupported driver %q", name)
}

// DriverFor picks a driver name from the extension of path.
func DriverFor(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if name, ok := extensions[ext]; ok {
		return name, nil
	}
	return "", fmt.Errorf("source: no driver for extension %q", ext)
}
