// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package source resolves logical effect names to physical sources and reads
// their text.
//
// # Core Concepts
//
//   - SourceFile: an immutable logical source identity. It carries the name the
//     caller used, the physical location (a file path or an embedded resource
//     name) and whether it lives in an embedded container.
//
//   - Declaration: an explicit {name, location, embedded} record supplied by
//     the caller, typically taken from a manifest. Declarations win over the
//     default location rule.
//
//   - Provider: the byte-read capability. OSProvider reads the local file
//     system, FSProvider reads any fs.FS (for example an embed.FS).
//
//   - Registry: combines declarations, a base directory and a default
//     extension into Resolve and Read operations.
//
// # Resolution
//
// A requested name such as "Lighting/Common" is matched case-insensitively
// against the declared names, first as a whole and then by its base name
// ("Common"). Without a declaration the registry synthesizes
// <base>/<dir>/<name>.<extension> and checks that it exists. A declared file
// that is missing at its literal path is retried under the base directory.
package source
