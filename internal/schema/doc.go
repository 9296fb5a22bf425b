// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package schema describes module types: the contract every configured
// module instance is checked against.
//
// A ModuleType is analogous to a function signature. It names the parameters
// an instance may bind, the kind of value each parameter accepts, the default
// used when the instance leaves a parameter out, and the products the module
// puts into the event. Instances are the calls; package plan binds one to the
// other.
//
// Why strict kinds instead of cty's implicit conversions?
//
// cty will happily turn the number 3 into the string "3". For a parameter
// set that is a silent misconfiguration: a momentum cut written where a
// collection tag belongs must fail at load time, not become a tag named "20".
// Conform therefore checks the value's own type first and only then
// normalises it.
package schema
