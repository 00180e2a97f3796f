package lint

import (
	"errors"
	"fmt"
)

// ErrWalkerBusy is returned when a walker is asked to start a file while it
// is still traversing another one.
var ErrWalkerBusy = errors.New("tree walker is already traversing a file")

// ErrNilFile is returned when a walker is handed no file.
var ErrNilFile = errors.New("no file to walk")

// ConfigError reports that a module could not be set up. Errors nest, so a
// failing check inside a walker reads
// "cannot initialize module TreeWalker - cannot initialize module X - ...".
type ConfigError struct {
	Module string
	Err    error
}

func (e *ConfigError) Error() string {
	return "cannot initialize module " + e.Module + " - " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PropertyError reports a property value the module cannot accept.
type PropertyError struct {
	Name  string
	Value string
	Err   error // optional detail, not part of the message
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("Cannot set property '%s' to '%s'", e.Name, e.Value)
}

func (e *PropertyError) Unwrap() error { return e.Err }

// UnknownPropertyError reports a property name the module does not declare.
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("Property '%s' does not exist, please check the documentation", e.Name)
}

// UnknownModuleError reports a module name with no registration.
type UnknownModuleError struct {
	Name string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("Unable to instantiate '%s'", e.Name)
}
