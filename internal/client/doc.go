// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the portal command-line client.
//
// Each invocation runs one subcommand (signup, login, profile, update,
// reset-password, dashboard, version) against the server through an
// [adapter.PortalAdapter] and prints the JSON result. The bearer token is
// passed in from configuration, so the client keeps no local state.
package client
