// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks one chat session: endpoint, model, transcript,
// and the single-request-in-flight slot.
//
// The request slot guarantees at most one chat request is awaiting a reply
// at any time. Callers claim it with Begin before sending, and release it
// with Finish when the reply (or failure) lands.
//
// # Key Types
//
//   - Manager: Session state with the request slot
//   - State: Request slot state (idle, awaiting)
//
// # Usage
//
//	mgr := session.NewManager("http://127.0.0.1:11434")
//	mgr.SetModel("llama3.2")
//
//	if err := mgr.Begin(); err != nil {
//	    // ErrBusy: a reply is still pending
//	}
//	// ... send request, then on delivery:
//	mgr.Finish()
//
// Changing the endpoint with SetEndpoint clears the selected model, since
// the new server's model list may differ.
package session
