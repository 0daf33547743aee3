// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides opt-in transcript persistence for ollamachat.
//
// This package handles saving and loading chat transcripts to/from disk,
// with support for search and listing. Persistence is opt-in; the live
// transcript in memory stays authoritative and nothing is written unless
// the user enables history.
//
// # Key Types
//
//   - TranscriptStore: JSON-file store, one file per chat session
//   - TranscriptMeta: Lightweight metadata for listing
//
// # Usage
//
// Create a store and save a transcript:
//
//	store, err := storage.NewTranscriptStore()
//	id, err := store.Save(transcript)
//
// List and load transcripts:
//
//	metas, err := store.List()
//	tr, err := store.Load(metas[0].ID)
//
// # Storage Location
//
// Transcripts are stored in ~/.ollamachat/history/ as JSON files.
package storage
