// Package config defines the format-agnostic manifest model for the
// application, along with the Loader interface for reading it from files.
//
// The `config.Model` is the single source of truth for the registry
// declarations and the programs the app composes. Concrete loaders, such as
// for HCL and YAML, are provided in separate packages.
package config
