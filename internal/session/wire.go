// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/validation"
)

// ErrUnknownEvent is returned for event names the browser may not send.
var ErrUnknownEvent = errors.New("unknown event")

// WireEvent is an event as sent by the glue script.
type WireEvent struct {
	Event   string          `json:"event" validate:"required,max=64"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Padding does not count toward the limit. The submitted title is bounded
// by the transport read limits; the controller rejects overlong titles.
type valuePayload struct {
	Value string `json:"value" validate:"trimmax=200"`
}

type searchPayload struct {
	Value string `json:"value"`
}

type filtersPayload struct {
	Language  string `json:"language" validate:"max=64"`
	Genre     string `json:"genre" validate:"max=64"`
	MinRating string `json:"min_rating" validate:"rating"`
}

type modalPayload struct {
	Panel string `json:"panel" validate:"required,oneof=about help contact"`
}

type serviceWorkerPayload struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail" validate:"max=500"`
}

// DecodeEvent turns a browser event into a controller event. Only user
// actions are accepted; timer and upstream events are internal.
func DecodeEvent(name string, payload []byte) (controller.Event, error) {
	switch name {
	case "search_submitted":
		var p searchPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return controller.SearchSubmitted{Value: p.Value}, nil
	case "input_changed":
		var p valuePayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return controller.InputChanged{Value: p.Value}, nil
	case "suggestion_selected":
		var p valuePayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return controller.SuggestionSelected{Value: p.Value}, nil
	case "filters_applied":
		var p filtersPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return controller.FiltersApplied{Language: p.Language, Genre: p.Genre, MinRating: p.MinRating}, nil
	case "modal_opened":
		var p modalPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return controller.ModalOpened{Panel: controller.ModalPanel(p.Panel)}, nil
	case "service_worker_registered":
		var p serviceWorkerPayload
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return controller.ServiceWorkerRegistered{OK: p.OK, Detail: p.Detail}, nil

	case "retry_requested":
		return controller.RetryRequested{}, nil
	case "input_focused":
		return controller.InputFocused{}, nil
	case "input_blurred":
		return controller.InputBlurred{}, nil
	case "escape_pressed":
		return controller.EscapePressed{}, nil
	case "filters_toggled":
		return controller.FiltersToggled{}, nil
	case "modal_closed":
		return controller.ModalClosed{}, nil
	case "page_loaded":
		return controller.PageLoaded{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// Decode validates a whole wire message and decodes its event.
func (w WireEvent) Decode() (controller.Event, error) {
	if verr := validation.ValidateStruct(&w); verr != nil {
		return nil, verr
	}
	return DecodeEvent(w.Event, w.Payload)
}

func decodePayload(payload []byte, dst interface{}) error {
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, dst); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}
