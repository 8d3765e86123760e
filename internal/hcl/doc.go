// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses manifest files, evaluates their expressions and
// translates the result into the format-agnostic config.Model.
package hcl
