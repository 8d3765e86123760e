// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package effect parses effect files into keyed sections and resolves shader
// keys to the best matching section.
//
// An effect file is plain text split into sections by separator lines. A
// separator is any line whose first two characters are "--"; the rest of the
// line, trimmed, is the section key. Lines before the first separator belong
// to no section.
//
//	-- Vertex
//	#version 330
//	void main() { ... }
//
//	-- Fragment.Diffuse
//	#version 330
//	#include Common.Lighting
//	void main() { ... }
//
// Keys are hierarchical by dot convention. FindBest returns the section whose
// key is the longest case-insensitive prefix of the requested key, so a
// request for "Fragment.Diffuse.Textured" falls back to "Fragment.Diffuse".
package effect
