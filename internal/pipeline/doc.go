// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline implements the client-side list processing shared by the
// ticket views: free-text search, categorical filtering, stable sorting, and
// pagination over an in-memory ticket slice.
//
// The pipeline is pure and total. Applying the same criteria to the same
// input always yields the same page, and no combination of inputs fails:
// unparsable timestamps sort as the zero time, unknown urgencies rank as
// normal, and page numbers are clamped into range.
//
// # Key Types
//
//   - Criteria: the full set of user-driven list controls
//   - Page: one rendered page plus pagination facts
//   - ViewState: Criteria plus the page-reset rules the views rely on
//
// # Usage
//
//	vs := pipeline.NewViewState(6)
//	vs.SetSearch("printer")
//	page := vs.Apply(tickets)
package pipeline
