// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package shaderkey parses shader request keys.
//
// A key has the form "<dir>/<source>.<section>", for example
// "Lighting/Phong.Fragment.Diffuse". The directory part is optional. The last
// path component is split on its first dot: the part before it names the
// logical source ("Lighting/Phong") and the rest is the section key
// ("Fragment.Diffuse").
package shaderkey
