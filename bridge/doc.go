// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package bridge synchronizes a live form model with the window hosting it.

# Mirror

Mirror serializes the model to JSON and writes it into a single hidden
element with id "hydrogen-form-data". The element is looked up on every
call and only created when missing, so it never exists twice:

	b, _ := bridge.New(doc, bridge.NewSelfWindow(id), accessor, models.MessageFormDataResponse)
	b.Mirror(model)
	text := b.MirrorText()

# Push

After mirroring, an embedded bridge (parent window differs from its own
window) posts {type, data} to the parent. The push type is either
FORM_DATA_RESPONSE or HYDROGEN_FORM_DATA_UPDATED. Delivery failures are
logged and wrapped in ErrDeliveryFailure; they never reach the caller.

# Pull

HandleMessage answers {"type": "GET_FORM_DATA"} by posting
FORM_DATA_RESPONSE back to the event's source, provided the source is a
Window. The data comes from the injected Accessor. Anything else is
ignored.

# Subscription

Incoming events are consumed by an explicit subscription:

	sub, err := b.Subscribe(inbox)
	defer sub.Close()

A bridge has at most one live subscription. Close waits for the listener
goroutine to exit.

# Host Windows

WSWindow adapts a gorilla/websocket connection to Window. Frames read in
ReadLoop become Events whose Source is the WSWindow, so replies go back over
the same socket.
*/
package bridge
