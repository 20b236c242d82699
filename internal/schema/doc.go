// Package schema defines the collection/field DSL consumed by the CMS
// runtime: declarative descriptors for content collections and their
// fields, YAML load/save, and validation combining an embedded JSON Schema
// with semantic checks (unique field names, resolvable reference targets).
package schema
