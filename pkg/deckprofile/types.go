package deckprofile

import (
	"github.com/bianoble/deck-profile/internal/config"
	"github.com/bianoble/deck-profile/internal/device"
	"github.com/bianoble/deck-profile/internal/engine"
)

// Type aliases re-export internal types as the public API.
// Users import "github.com/bianoble/deck-profile/pkg/deckprofile" and use
// deckprofile.Document, deckprofile.Plan, etc.

type Document = config.Document
type Entry = config.Entry
type Format = config.Format
type Error = config.Error
type ErrorKind = config.Kind
type Geometry = device.Geometry
type DeviceModel = device.Model
type ModelDefinition = device.Definition
type Plan = engine.Plan
type KeyPlan = engine.KeyPlan
type Action = engine.Action
type ActionKind = engine.ActionKind

const (
	FormatYAML = config.FormatYAML
	FormatTOML = config.FormatTOML
)

// Error kinds.
const (
	KindNotFound        = config.KindNotFound
	KindParse           = config.KindParse
	KindInvalid         = config.KindInvalid
	KindInvalidSelector = config.KindInvalidSelector
	KindPathNotFound    = config.KindPathNotFound
)
