// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

// Package client implements the headless sync daemon runtime.
//
// It wires client services and background synchronization into a single
// process lifecycle: authenticate, run periodic sync, shut down cleanly.
package client
