package checks

import (
	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
)

// Policy holds the table settings that change how checks are shown
type Policy struct {
	DefaultRollMode       chat.RollMode
	HideSanityFromPlayers bool
	NonLethalMethod       NonLethalMethod
}

// DefaultPolicy rolls publicly and shows sanity
func DefaultPolicy() Policy {
	return Policy{
		DefaultRollMode: chat.RollModePublic,
		NonLethalMethod: NonLethalDigits,
	}
}

// IsSanityFamily covers sanity checks and the ritual skill, which is
// derived from sanity.
func IsSanityFamily(kind Kind, key string) bool {
	return kind == KindSanity || key == deltagreen.SkillRitual
}

// HideTarget is true when private sanity is on and a player rolls a
// sanity-family check.
func (p Policy) HideTarget(kind Kind, key string, isGM bool) bool {
	return p.HideSanityFromPlayers && !isGM && IsSanityFamily(kind, key)
}

// RollModeFor picks the visibility of a roll. Hidden sanity is forced
// blind; otherwise the request wins over the default.
func (p Policy) RollModeFor(kind Kind, key string, requested chat.RollMode, isGM bool) chat.RollMode {
	if p.HideTarget(kind, key, isGM) {
		return chat.RollModeBlind
	}
	if requested != "" {
		return requested
	}
	if p.DefaultRollMode != "" {
		return p.DefaultRollMode
	}
	return chat.RollModePublic
}
